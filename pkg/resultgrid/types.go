package resultgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var resultTypes = map[int64]string{
	0:  "HASH_RESULT",
	1:  "TEXT_RESULT",
	2:  "VERSION_RESULT",
	3:  "NUMERIC_RESULT",
	4:  "DATE_BES_RESULT",
	5:  "IPADDRESS_RESULT",
	6:  "DATE_WMI_RESULT",
	7:  "TIME_DIFF_RESULT",
	8:  "DATA_SIZE_RESULT",
	9:  "NUMERIC_INTEGER_RESULT",
	10: "VARIOUS_DATE_RESULT",
	11: "REGEX_MATCH_RESULT",
	12: "LAST_OPERATOR_RESULT",
}

// ResultTypeLabel names a column result type code.
func ResultTypeLabel(code int64) string {
	if label, ok := resultTypes[code]; ok {
		return label
	}
	return fmt.Sprintf("UNKNOWN_RESULT_%d", code)
}

// NowLayout is the layout of the "now" stamp on result set lists.
const NowLayout = "2006/01/02 15:04:05 GMT-0700"

// ParseNow parses a result set "now" stamp such as
// "2019/02/19 20:50:43 GMT-0000".
func ParseNow(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if t, err := time.Parse(NowLayout, text); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unable to parse now stamp %q: %s", ErrGrid, text, err)
	}
	return t, nil
}
