package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"weathercat/internal/domain"
)

const (
	fieldSep  = "|"
	lineSep   = "\n"
	numFields = 5
)

// CorruptStateError points at the first line that failed to parse
type CorruptStateError struct {
	Line   int
	Reason string
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", domain.ErrCorruptState, e.Line, e.Reason)
}

// Is makes CorruptStateError match domain.ErrCorruptState
func (e *CorruptStateError) Is(target error) bool {
	return target == domain.ErrCorruptState
}

// Encode serializes the table as id|state|location|language|units lines ordered by id.
// Locations must not contain the field or line separator.
func Encode(table Table) string {
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		rec := table[id]
		lines = append(lines, strings.Join([]string{
			strconv.FormatInt(id, 10),
			strconv.Itoa(int(rec.State)),
			rec.Settings.Location,
			rec.Settings.Language.String(),
			rec.Settings.Units.String(),
		}, fieldSep))
	}
	return strings.Join(lines, lineSep)
}

// Decode parses the output of Encode. Any bad line fails the whole table.
func Decode(data string) (Table, error) {
	table := Table{}
	for i, line := range strings.Split(data, lineSep) {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		id, rec, err := decodeLine(line)
		if err != nil {
			return nil, &CorruptStateError{Line: i + 1, Reason: err.Error()}
		}
		table[id] = rec
	}
	return table, nil
}

func decodeLine(line string) (int64, *domain.UserRecord, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) != numFields {
		return 0, nil, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid user id %q", fields[0])
	}
	stateInt, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid state %q", fields[1])
	}
	state, err := domain.ParseDialogueState(stateInt)
	if err != nil {
		return 0, nil, err
	}
	language, err := domain.ParseLanguage(fields[3])
	if err != nil {
		return 0, nil, err
	}
	units, err := domain.ParseUnits(fields[4])
	if err != nil {
		return 0, nil, err
	}

	return id, &domain.UserRecord{
		State: state,
		Settings: domain.Settings{
			Location: fields[2],
			Language: language,
			Units:    units,
		},
	}, nil
}
