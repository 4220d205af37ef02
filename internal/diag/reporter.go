package diag

// Reporter — минимальный контракт получения диагностик от вычислителя.
// Реализации: BagReporter (кладёт в Bag), FuncReporter, MultiReporter (fan-out).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// FuncReporter adapts a plain function to Reporter.
type FuncReporter func(Diagnostic)

func (f FuncReporter) Report(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

// MultiReporter forwards every diagnostic to all wrapped reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
