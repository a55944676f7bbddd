package notify

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatSuccess renders the job-alert message for one company: name,
// website, titled job keywords, and up to two career-page URLs.
func FormatSuccess(company, website string, jobs, careerPages []string, at time.Time) string {
	var b strings.Builder
	b.WriteString("\U0001F389 <b>Job Alert!</b>\n\n")
	fmt.Fprintf(&b, "<b>Company:</b> %s\n", company)
	fmt.Fprintf(&b, "<b>Website:</b> %s\n", website)
	b.WriteString("<b>Found Positions:</b>\n")
	for _, job := range jobs {
		fmt.Fprintf(&b, "• %s\n", titleCaser.String(job))
	}
	b.WriteString("\n<b>Career Pages:</b>\n")
	pages := careerPages
	if len(pages) > 2 {
		pages = pages[:2]
	}
	for _, u := range pages {
		fmt.Fprintf(&b, "• %s\n", u)
	}
	fmt.Fprintf(&b, "\n<b>Time:</b> %s", at.Format("2006-01-02 15:04:05"))
	return b.String()
}

// FormatSummary renders the end-of-batch overview.
func FormatSummary(processed int, companiesWithJobs []string) string {
	var b strings.Builder
	b.WriteString("\U0001F4CA <b>Crawling Summary</b>\n\n")
	fmt.Fprintf(&b, "<b>Companies Processed:</b> %d\n", processed)
	fmt.Fprintf(&b, "<b>Jobs Found:</b> %d\n", len(companiesWithJobs))
	if len(companiesWithJobs) > 0 {
		b.WriteString("\n<b>Companies with Openings:</b>\n")
		for _, c := range companiesWithJobs {
			fmt.Fprintf(&b, "• %s\n", c)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatFatal renders the alert sent when a run aborts before processing.
func FormatFatal(err error) string {
	return fmt.Sprintf("❌ Job crawler encountered an error: %v", err)
}
