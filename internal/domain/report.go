package domain

// Scorecard holds the two pipeline-computed scores, both on a 0-100 scale.
type Scorecard struct {
	Confidence int
	Knowledge  int
}

// Average is the overall score used for status classification and the
// subject line, floor of the mean of the two components.
func (s Scorecard) Average() int {
	return (s.Confidence + s.Knowledge) / 2
}

// ReportStatus classifies overall performance.
type ReportStatus string

const (
	StatusRecommended      ReportStatus = "recommended"
	StatusUnderReview      ReportStatus = "under review"
	StatusNeedsImprovement ReportStatus = "needs improvement"
)

// StatusFor maps an overall score to its status band. The thresholds are
// shared with the badge and color mapping in the report renderer.
func StatusFor(score int) ReportStatus {
	switch {
	case score >= 75:
		return StatusRecommended
	case score >= 50:
		return StatusUnderReview
	default:
		return StatusNeedsImprovement
	}
}

// Report is the transport-ready payload handed to the delivery collaborator.
type Report struct {
	Recipient string
	Subject   string
	HTML      string
}
