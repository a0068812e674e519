// Package prompt runs the registration form as a sequence of line prompts
// for terminals where the full-screen form is unwanted.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
)

// record is the YAML summary printed after an accepted submission.
type record struct {
	ID          string            `yaml:"id"`
	SubmittedAt string            `yaml:"submitted_at"`
	Values      map[string]string `yaml:"values"`
}

// Run asks for every field, submits through ctrl and prints the outcome to
// out. Each answer is checked with the field's rules before the next
// question; a declined confirmation returns without submitting.
func Run(ctx context.Context, d Driver, ctrl *registration.Controller, out io.Writer) error {
	cat := ctrl.Catalog()
	validator := ctrl.Validator()

	if _, err := fmt.Fprintf(out, "%s\n%s\n\n", cat.Text(registration.MsgFormTitle), cat.Text(registration.MsgFormDescription)); err != nil {
		return err
	}

	var values registration.Values
	for _, f := range registration.Fields {
		answer, err := ask(ctx, d, f, cat, validator, values)
		if err != nil {
			return err
		}
		values.Set(f, answer)
		if err := ctrl.UpdateField(f, answer); err != nil {
			return fmt.Errorf("updating %s: %w", f, err)
		}
	}

	ok, err := d.Confirm(ctx, ConfirmConfig{
		Message: cat.Text(registration.MsgSubmitLabel) + "?",
		Default: true,
	})
	if err != nil {
		return err
	}
	if !ok {
		log.Info(log.CatSubmit, "Prompt submission declined")
		_, err := fmt.Fprintln(out, "Registration cancelled.")
		return err
	}

	outcome, err := ctrl.Submit(ctx)
	if err != nil {
		if _, werr := fmt.Fprintln(out, cat.Text(registration.MsgSubmissionFailed)); werr != nil {
			return errors.Join(err, werr)
		}
		return err
	}
	if !outcome.Accepted {
		// Every answer passed its field rules, so this only happens when the
		// record changed under us.
		return outcome.Errors.AsError()
	}

	return printSubmission(out, cat, outcome.Submission)
}

func ask(
	ctx context.Context,
	d Driver,
	f registration.Field,
	cat registration.Catalog,
	v registration.Validator,
	sofar registration.Values,
) (string, error) {
	cfg := InputConfig{
		Message: cat.Label(f) + ":",
		Help:    cat.Placeholder(f),
		Validator: func(s string) error {
			candidate := sofar
			candidate.Set(f, s)
			if fe, failed := v.ValidateField(f, candidate); failed {
				return errors.New(fe.Message)
			}
			return nil
		},
	}
	if f.Secret() {
		return d.Password(ctx, cfg)
	}
	return d.Input(ctx, cfg)
}

func printSubmission(out io.Writer, cat registration.Catalog, s registration.Submission) error {
	data, err := yaml.Marshal(record{
		ID:          s.ID,
		SubmittedAt: s.SubmittedAt.Format(time.RFC3339),
		Values:      s.Values.Masked().Map(),
	})
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}
	_, err = fmt.Fprintf(out, "\n%s\n%s\n\n%s",
		cat.Text(registration.MsgSuccessTitle),
		cat.Text(registration.MsgSuccessBody),
		data)
	return err
}
