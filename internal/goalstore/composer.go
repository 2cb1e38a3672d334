package goalstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/taigen-app/taigen/internal/model"
)

const DateLayout = "2006-01-02"

var (
	ErrValidation = errors.New("validation failed")
)

// Validation reasons, keyed by field in ValidationError.
const (
	ReasonRequired     = "required"
	ReasonCategory     = "category"
	ReasonDate         = "date"
	ReasonDeadlinePast = "deadline_past"
)

var draftValidate *validator.Validate

func init() {
	draftValidate = validator.New()
	_ = draftValidate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.IsCategory(fl.Field().String())
	})
}

// ValidationError lists the failing fields. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("%s (%s)", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Draft holds the goal form as typed by the user.
type Draft struct {
	Title       string `validate:"required"`
	Deadline    string `validate:"required,datetime=2006-01-02"`
	Category    string `validate:"required,category"`
	Description string
}

func (d Draft) normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Deadline = strings.TrimSpace(d.Deadline)
	d.Category = strings.TrimSpace(d.Category)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Compose validates the draft against today's date (in today's location) and
// returns the request consumed by Store.CreateGoal.
func (d Draft) Compose(today time.Time) (Request, error) {
	d = d.normalized()

	verr := &ValidationError{Fields: map[string]string{}}

	err := draftValidate.Struct(d)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Request{}, err
		}
		for _, fe := range fieldErrs {
			verr.Fields[strings.ToLower(fe.Field())] = reasonFor(fe.Tag())
		}
	}

	var deadline time.Time
	if _, bad := verr.Fields["deadline"]; !bad {
		deadline, err = time.ParseInLocation(DateLayout, d.Deadline, today.Location())
		if err != nil {
			verr.Fields["deadline"] = ReasonDate
		} else if deadline.Before(startOfDay(today)) {
			verr.Fields["deadline"] = ReasonDeadlinePast
		}
	}

	if len(verr.Fields) > 0 {
		return Request{}, verr
	}

	return Request{
		title:       d.Title,
		deadline:    deadline,
		category:    d.Category,
		description: d.Description,
	}, nil
}

// Request is an immutable, validated goal-creation request.
type Request struct {
	title       string
	deadline    time.Time
	category    string
	description string
}

func (r Request) Title() string       { return r.title }
func (r Request) Deadline() time.Time { return r.deadline }
func (r Request) Category() string    { return r.category }
func (r Request) Description() string { return r.description }

// Draft returns the request as form values, used to re-render the form.
func (r Request) Draft() Draft {
	d := Draft{
		Title:       r.title,
		Category:    r.category,
		Description: r.description,
	}
	if !r.deadline.IsZero() {
		d.Deadline = r.deadline.Format(DateLayout)
	}
	return d
}

// check repeats the composer rules; a zero Request fails them.
func (r Request) check(today time.Time) error {
	verr := &ValidationError{Fields: map[string]string{}}
	if r.title == "" {
		verr.Fields["title"] = ReasonRequired
	}
	if r.category == "" {
		verr.Fields["category"] = ReasonRequired
	}
	if r.deadline.IsZero() {
		verr.Fields["deadline"] = ReasonRequired
	} else if r.deadline.Before(startOfDay(today)) {
		verr.Fields["deadline"] = ReasonDeadlinePast
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func reasonFor(tag string) string {
	switch tag {
	case "category":
		return ReasonCategory
	case "datetime":
		return ReasonDate
	default:
		return ReasonRequired
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
