package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	watermark "github.com/gcslaoli/corner-watermark-go"
)

// prompter asks for missing configuration values line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question and returns the next input line without its line
// ending. A final line without a newline is still accepted.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", errors.Wrapf(err, "read answer to %q", strings.TrimSpace(question))
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// askPlacement repeats the question until a valid corner is entered.
func (p *prompter) askPlacement() (watermark.Placement, error) {
	for {
		answer, err := p.ask("Watermark position? br/bl/tr/tl ")
		if err != nil {
			return 0, err
		}
		if pl, err := watermark.ParsePlacement(answer); err == nil {
			return pl, nil
		}
	}
}
