package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// potHeader is the template entry opening every POT file. No creation date:
// output must be reproducible for identical input.
const potHeader = `msgid ""
msgstr ""
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
`

// WritePOT serializes the catalog as a gettext POT template.
func (c *Catalog) WritePOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(potHeader)

	for _, m := range c.Messages() {
		bw.WriteByte('\n')

		for _, line := range m.Comments {
			fmt.Fprintf(bw, "#. %s\n", line)
		}
		if len(m.References) > 0 {
			fmt.Fprintf(bw, "#: %s\n", strings.Join(m.References, " "))
		}
		if len(m.Flags) > 0 {
			fmt.Fprintf(bw, "#, %s\n", strings.Join(m.Flags, ", "))
		}

		if m.Context != "" {
			writePOField(bw, "msgctxt", m.Context)
		}
		writePOField(bw, "msgid", m.Text)
		if m.TextPlural != "" {
			writePOField(bw, "msgid_plural", m.TextPlural)
			bw.WriteString("msgstr[0] \"\"\n")
			bw.WriteString("msgstr[1] \"\"\n")
		} else {
			bw.WriteString("msgstr \"\"\n")
		}
	}

	return bw.Flush()
}

// writePOField emits one keyword with its string value, using the gettext
// multi-line convention when the value embeds newlines.
func writePOField(w *bufio.Writer, keyword, value string) {
	if !strings.Contains(value, "\n") {
		fmt.Fprintf(w, "%s \"%s\"\n", keyword, escapePO(value))
		return
	}

	fmt.Fprintf(w, "%s \"\"\n", keyword)
	segments := strings.SplitAfter(value, "\n")
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	for _, seg := range segments {
		fmt.Fprintf(w, "\"%s\"\n", escapePO(seg))
	}
}

var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

func escapePO(s string) string {
	return poEscaper.Replace(s)
}
