package csvimport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-daybook/pkg/daybook"
)

const dateLayout = "2006-01-02"

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrMalformedDate = errors.New("malformed date")
)

// ParseLine converts one line of a comma-separated resource into a raw
// entry. The line is trimmed of surrounding whitespace and split on
// commas with trailing empty fields discarded; exactly a date field and
// a title field must remain. The date must be an ISO-8601 calendar date
// (YYYY-MM-DD), read as midnight UTC. Field interiors are kept intact.
func ParseLine(line string) (daybook.RawEntry, error) {
	trimmed := strings.TrimSpace(line)

	fields := strings.Split(trimmed, ",")
	for len(fields) > 2 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) != 2 {
		return daybook.RawEntry{}, fmt.Errorf("%w: %q", ErrMalformedLine, trimmed)
	}

	date, err := time.Parse(dateLayout, fields[0])
	if err != nil {
		return daybook.RawEntry{}, fmt.Errorf("%w: %q", ErrMalformedDate, fields[0])
	}

	return daybook.RawEntry{Date: date, Title: fields[1]}, nil
}
