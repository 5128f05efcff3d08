// Package registry merges raw signup rows from any number of input
// sources into one validated Volunteer record per unique email.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrUnknownShift = errors.New("unknown shift name")
	ErrNoShifts     = errors.New("no shift names claimed")
)

// RowError reports a single rejected signup row. Rejections are
// per-row: the rest of the batch keeps ingesting.
type RowError struct {
	Source string
	Row    int
	Email  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d (%s): %v", e.Source, e.Row, e.Email, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Registry accumulates volunteers across Ingest calls. It is built by a
// single caller before assignment; it is not safe for concurrent Ingest.
type Registry struct {
	byEmail map[string]*models.Volunteer
	rowErrs []*RowError
	logger  *zap.Logger
}

// New creates an empty registry. A nil logger disables logging.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		byEmail: make(map[string]*models.Volunteer),
		logger:  logger,
	}
}

// Ingest validates and merges one source's rows. Rows failing validation
// are skipped and returned as RowErrors; they never abort the batch.
// Callable once per input source, repeatable across sources.
func (r *Registry) Ingest(source string, rows []models.SignupRecord) []*RowError {
	var errs []*RowError

	reject := func(row int, email string, err error) {
		re := &RowError{Source: source, Row: row, Email: email, Err: err}
		errs = append(errs, re)
		r.rowErrs = append(r.rowErrs, re)
		r.logger.Warn("skipping signup row",
			zap.String("source", source),
			zap.Int("row", row),
			zap.Error(err))
	}

	for i, rec := range rows {
		row := i + 1
		email := strings.ToLower(strings.TrimSpace(rec.Email))
		if !validEmail(email) {
			reject(row, rec.Email, fmt.Errorf("%w: %q", ErrInvalidEmail, rec.Email))
			continue
		}

		if len(rec.Shifts) == 0 {
			reject(row, email, ErrNoShifts)
			continue
		}
		shifts := make([]models.Shift, 0, len(rec.Shifts))
		bad := false
		for _, name := range rec.Shifts {
			s, ok := models.ParseShift(name)
			if !ok {
				reject(row, email, fmt.Errorf("%w: %q", ErrUnknownShift, name))
				bad = true
				break
			}
			shifts = append(shifts, s)
		}
		if bad {
			continue
		}

		vol, seen := r.byEmail[email]
		if !seen {
			vol = models.NewVolunteer(
				strings.TrimSpace(rec.FirstName),
				strings.TrimSpace(rec.LastName),
				email,
				strings.TrimSpace(rec.Phone),
			)
			r.byEmail[email] = vol
			r.logger.Debug("added volunteer", zap.String("email", email))
		} else {
			// Later sightings only fill fields the first left empty.
			if vol.FirstName == "" {
				vol.FirstName = strings.TrimSpace(rec.FirstName)
			}
			if vol.LastName == "" {
				vol.LastName = strings.TrimSpace(rec.LastName)
			}
			if vol.Phone == "" {
				vol.Phone = strings.TrimSpace(rec.Phone)
			}
			r.logger.Info("merging shifts for existing volunteer",
				zap.String("email", email))
		}
		for _, s := range shifts {
			vol.AddShift(s)
		}
	}

	return errs
}

// Finalize returns the merged volunteers ordered by last name, first
// name, then email, the order the assignment pass iterates in.
func (r *Registry) Finalize() []*models.Volunteer {
	out := make([]*models.Volunteer, 0, len(r.byEmail))
	for _, v := range r.byEmail {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].LastName), strings.ToLower(out[j].LastName)
		if li != lj {
			return li < lj
		}
		fi, fj := strings.ToLower(out[i].FirstName), strings.ToLower(out[j].FirstName)
		if fi != fj {
			return fi < fj
		}
		return out[i].Email < out[j].Email
	})
	return out
}

// UniqueCount returns the number of distinct volunteer emails seen.
func (r *Registry) UniqueCount() int { return len(r.byEmail) }

// RowErrors returns every rejected row collected across all sources.
func (r *Registry) RowErrors() []*RowError { return r.rowErrs }

// validEmail applies the same minimal shape check the signup sheets are
// validated against: something@something.something.
func validEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
