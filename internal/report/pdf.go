package report

import (
	"bytes"
	"fmt"
	"strings"

	"cybershield/internal/domain"
)

// RenderPDF produces a single-page PDF summary of an assessment: the
// target, type, score and status, followed by each threat on its own
// line. The writer emits PDF 1.4 directly; the document is simple
// enough that a rendering library buys nothing here.
func RenderPDF(a domain.Assessment) []byte {
	lines := []string{
		fmt.Sprintf("CyberShield Report: %s", a.Target),
		fmt.Sprintf("Type: %s", a.Type),
		fmt.Sprintf("Score: %d", a.Score),
		fmt.Sprintf("Status: %s", a.Status),
	}
	for _, threat := range a.Threats {
		lines = append(lines, "- "+threat)
	}

	var content bytes.Buffer
	content.WriteString("BT\n/F1 12 Tf\n")
	y := 750
	for _, line := range lines {
		fmt.Fprintf(&content, "1 0 0 1 100 %d Tm (%s) Tj\n", y, escapePDF(line))
		y -= 20
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)
	return buf.Bytes()
}

func escapePDF(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
