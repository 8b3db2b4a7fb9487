package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ismaeelS/WarCardGame/game"
)

const (
	turnLimitPrompt   = "Enter a limit to the number of turns allowed in this game. Any input that is not an integer equal to or greater than 0 will set the turn limit to 1000\n"
	turnsToPlayPrompt = "Enter number of turns to play. Any input that's not an integer greater than 1 will move game to next hand.\n"
)

// Prompter asks the interactive questions of a game. End of input counts
// as an empty answer, except for TurnsToPlay which reports io.EOF so the
// caller can decide how to finish.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ask(prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PlayerName asks for player n's name (1 or 2), defaulting to "Player n".
func (p *Prompter) PlayerName(n int) (string, error) {
	name, err := p.ask(fmt.Sprintf("What is player %d's name?\n", n))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}
	if n == 2 {
		return game.DefaultSecondName, nil
	}
	return game.DefaultFirstName, nil
}

// TurnLimit asks for the game's turn limit.
func (p *Prompter) TurnLimit() (int, error) {
	answer, err := p.ask(turnLimitPrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	limit := ParseTurnLimit(answer)
	_, err = fmt.Fprintf(p.out, "Turn limit set. This game will have at most %d turns.\n", limit)
	return limit, err
}

// TurnsToPlay asks how many turns the next batch should play.
func (p *Prompter) TurnsToPlay() (int, error) {
	answer, err := p.ask("\n" + turnsToPlayPrompt)
	if err != nil {
		return 1, err
	}
	n := ParseTurnsToPlay(answer)
	if n > 1 {
		if _, err := fmt.Fprintf(p.out, "Attempting to play %d turns.\n", n); err != nil {
			return n, err
		}
	}
	return n, nil
}
