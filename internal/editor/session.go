// Package editor runs the interactive console menu over a backup document.
package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/backup-toolkit/internal/backup"
	"github.com/backup-toolkit/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInputClosed is returned when the console input ends before save-and-exit.
// Nothing is written in that case.
var ErrInputClosed = errors.New("input closed before save")

// Saver persists the document on save-and-exit
type Saver interface {
	Save(doc *models.Document) error
}

// Session is one interactive editing session
type Session struct {
	id    string
	doc   *models.Document
	saver Saver
	in    *bufio.Scanner
	out   io.Writer
	log   zerolog.Logger
}

// NewSession creates a session reading operator input from in and writing
// the menu and messages to out
func NewSession(doc *models.Document, saver Saver, in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		id:    id,
		doc:   doc,
		saver: saver,
		in:    newLineScanner(in),
		out:   out,
		log:   log.With().Str("component", "editor").Str("session_id", id).Logger(),
	}
}

// Run shows the menu and dispatches selections until the operator saves.
// It returns nil after a successful save.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info().Msg("Editor session started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println(menuText)
		choice, err := s.prompt(promptChoice)
		if err != nil {
			return err
		}

		s.log.Debug().Str("choice", choice).Msg("Menu selection")

		switch strings.TrimSpace(choice) {
		case "1":
			s.printLines(backup.NewsLines(s.doc.News))
		case "2":
			err = s.edit(s.doc.News, backup.NewsLines, backup.SetNewsField, promptNewsID, msgNewsNotFound, newsFieldsHint)
		case "3":
			if s.save() {
				return nil
			}
		case "4":
			backup.Renumber(s.doc.News)
			s.println(msgNewsRenumbered)
		case "5":
			s.printLines(backup.ProductLines(s.doc.Products))
		case "6":
			err = s.edit(s.doc.Products, backup.ProductLines, backup.SetField, promptProductID, msgProductMissing, productFieldsHint)
		case "7":
			backup.Renumber(s.doc.Products)
			s.println(msgProductsRenumbered)
		case "8":
			backup.RenumberPermissions(s.doc.Permissions)
			s.println(msgPermissionsRenumbered)
		default:
			s.println(msgInvalidChoice)
		}

		if err != nil {
			return err
		}
	}
}

// edit lists the records, asks for an id and a field, and overwrites the
// field. Operator mistakes are reported and leave the document unchanged;
// only a closed input is returned as an error.
func (s *Session) edit(
	list []models.Record,
	render func([]models.Record) iter.Seq[string],
	set func(r models.Record, field, input string) error,
	idPrompt, notFound, fieldsHint string,
) error {
	s.printLines(render(list))

	rawID, err := s.prompt(idPrompt)
	if err != nil {
		return err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(rawID))
	if convErr != nil {
		s.println(msgInvalidID)
		return nil
	}

	record, findErr := backup.FindByID(list, id)
	if findErr != nil {
		s.println(notFound)
		return nil
	}

	s.println(fieldsHint)
	field, err := s.prompt(promptField)
	if err != nil {
		return err
	}

	current, ok := record.String(field)
	if !ok {
		s.println(msgInvalidField)
		return nil
	}
	s.println(fmt.Sprintf(msgCurrentValue, current))

	value, err := s.prompt(promptValue)
	if err != nil {
		return err
	}
	if err := set(record, field, value); err != nil {
		s.println(msgInvalidField)
		return nil
	}

	s.log.Info().Int("id", id).Str("field", field).Msg("Record field updated")
	s.println(msgUpdated)
	return nil
}

func (s *Session) save() bool {
	if err := s.saver.Save(s.doc); err != nil {
		s.log.Error().Err(err).Msg("Failed to save backup document")
		s.println(fmt.Sprintf(msgSaveFailed, err))
		return false
	}
	s.println(msgSaved)
	s.log.Info().Msg("Editor session saved")
	return true
}

// newLineScanner reads operator lines of any length
func newLineScanner(in io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	return scanner
}

func (s *Session) prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return s.in.Text(), nil
}

func (s *Session) printLines(lines iter.Seq[string]) {
	for line := range lines {
		s.println(line)
	}
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}
