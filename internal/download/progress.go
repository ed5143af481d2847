package download

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Progress observes a transfer as it advances.
type Progress interface {
	// Start is called once before the first chunk with the expected total
	// size in bytes, or a non-positive value when the size is unknown.
	Start(total int64)
	// Update is called after every written chunk with cumulative transferred bytes.
	Update(transferred, total int64)
	// Finish is called once after the last chunk, on success and failure alike.
	Finish()
}

// NopProgress discards all transfer notifications.
type NopProgress struct{}

// Start implements Progress.
func (NopProgress) Start(int64) {}

// Update implements Progress.
func (NopProgress) Update(int64, int64) {}

// Finish implements Progress.
func (NopProgress) Finish() {}

const (
	// barWidth is the number of cells in the rendered bar.
	barWidth = 40
	// bytesPerMegabyte converts byte counters for display.
	bytesPerMegabyte = 1024 * 1024

	filledCell = "█"
	emptyCell  = "░"
)

// TerminalProgress renders a fixed-width bar on a single line, redrawing it
// in place as the transfer advances. Nothing is rendered when the total size
// is unknown.
type TerminalProgress struct {
	// out receives the rendered bar.
	out io.Writer
	// lastLine suppresses redundant redraws of an identical line.
	lastLine string
	// rendered tracks whether anything was drawn, so Finish knows to
	// terminate the line.
	rendered bool
}

// NewTerminalProgress returns a bar rendering to stdout.
func NewTerminalProgress() *TerminalProgress {
	return &TerminalProgress{out: os.Stdout}
}

// Start implements Progress.
func (p *TerminalProgress) Start(_ int64) {
	p.lastLine = ""
	p.rendered = false
}

// Update implements Progress.
func (p *TerminalProgress) Update(transferred, total int64) {
	if total <= 0 {
		return
	}

	percent := transferred * 100 / total
	if percent > 100 {
		percent = 100
	}

	filled := int(percent) * barWidth / 100
	line := fmt.Sprintf("Progress: [%s%s] %d%% (%.2f MB / %.2f MB)",
		strings.Repeat(filledCell, filled),
		strings.Repeat(emptyCell, barWidth-filled),
		percent,
		float64(transferred)/bytesPerMegabyte,
		float64(total)/bytesPerMegabyte)

	if line == p.lastLine {
		return
	}

	p.lastLine = line
	p.rendered = true

	_, _ = fmt.Fprintf(p.out, "\r%s", line)
}

// Finish implements Progress.
func (p *TerminalProgress) Finish() {
	if p.rendered {
		_, _ = fmt.Fprintln(p.out)
	}
}
