// Package importer reads account records exported by the legacy system.
//
// Each record is a ';' separated line:
//
//	full name;email;salt:hash;phone
//
// The phone may be blank and any fields after it are ignored.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/userholder/internal/common"
	"github.com/dmitrijs2005/userholder/internal/users"
)

const (
	fieldName = iota
	fieldEmail
	fieldCredentials
	fieldPhone
)

// Read parses every record in r. It stops at the first malformed record and
// reports its line number.
func Read(r io.Reader) ([]users.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records []users.Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidRecord, err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := parseFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

// ReadFile is Read over the named file.
func ReadFile(path string) ([]users.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// ParseLine parses a single record with the same quoting rules as Read.
func ParseLine(line string) (users.Record, error) {
	records, err := Read(strings.NewReader(line))
	if err != nil {
		return users.Record{}, err
	}
	if len(records) == 0 {
		return users.Record{}, fmt.Errorf("%w: empty line", common.ErrInvalidRecord)
	}
	return records[0], nil
}

func parseFields(fields []string) (users.Record, error) {
	if len(fields) <= fieldCredentials {
		return users.Record{}, fmt.Errorf("%w: want at least 3 fields, got %d", common.ErrInvalidRecord, len(fields))
	}

	first, last, err := users.SplitFullName(fields[fieldName])
	if err != nil {
		return users.Record{}, fmt.Errorf("%w: %w", common.ErrInvalidRecord, err)
	}

	cred := strings.TrimSpace(fields[fieldCredentials])
	sep := strings.LastIndex(cred, ":")
	if sep <= 0 || sep == len(cred)-1 {
		return users.Record{}, fmt.Errorf("%w: credentials must be salt:hash", common.ErrInvalidRecord)
	}

	rec := users.Record{
		FirstName:    first,
		LastName:     last,
		Email:        strings.TrimSpace(fields[fieldEmail]),
		Salt:         cred[:sep],
		PasswordHash: cred[sep+1:],
	}
	if len(fields) > fieldPhone {
		rec.Phone = strings.TrimSpace(fields[fieldPhone])
	}
	return rec, nil
}
