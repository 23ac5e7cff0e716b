// Package orchestration runs the selected workloads one after another through
// the timing harness and turns the reports into presented output and an exit
// code. Presentation is reached only through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
