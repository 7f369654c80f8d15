package mailer

import (
	"errors"

	"github.com/oksasatya/inventory-api/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has neither template nor subject with body")

// Render resolves the subject and bodies of a job, rendering its template when set.
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template != "" {
		return templates.Render(job.Template, job.Data)
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return "", "", "", ErrEmptyJob
	}
	return job.Subject, job.Text, job.HTML, nil
}
