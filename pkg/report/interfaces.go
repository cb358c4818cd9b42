//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=report
package report

type (
	// Sink receives status reports for the host collector.
	Sink interface {
		SendStatus(code StatusCode, report Report)
	}

	// SkipSignal is the run-wide "skip remaining scenarios" signal.
	SkipSignal interface {
		Skipped() bool
		MarkSkip()
	}
)
