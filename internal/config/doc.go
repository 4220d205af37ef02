// Package config discovers and loads budget configuration files.
//
// The canonical file is budgets.toml; budgets.yaml, budgets.yml and
// budgets.json carry the same shape. Loaded rules are validated before they
// reach the evaluator.
package config
