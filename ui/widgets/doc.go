// Package widgets provides the stock widgets: labels, buttons, containers,
// windows and input controls. They push typed messages for their ancestors
// and never call application code directly.
package widgets
