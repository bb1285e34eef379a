package templates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

//go:generate qtc -file=report.qtpl

// Row is one scenario of a benchmark report.
type Row struct {
	Name          string
	Kind          string
	Width, Height int
	Iterations    int64
	Notifications int64
	Avg, P99      time.Duration
	Digest        uint64
}

func size(w, h int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(w))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(h))
	return sb.String()
}

func comma(n int64) string {
	return humanize.Comma(n)
}

func hex(d uint64) string {
	return fmt.Sprintf("%016x", d)
}
