package admin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword reads a password from in when fromStdin is set, otherwise
// prompts on the terminal without echo. confirm asks for it twice.
func ReadPassword(in io.Reader, out io.Writer, fromStdin, confirm bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin не терминал: используйте --password-stdin")
	}

	password, err := prompt(out, fd, "Пароль: ")
	if err != nil || !confirm {
		return password, err
	}

	again, err := prompt(out, fd, "Повторите пароль: ")
	if err != nil {
		return "", err
	}
	if password != again {
		return "", errors.New("пароли не совпадают")
	}
	return password, nil
}

func prompt(out io.Writer, fd int, label string) (string, error) {
	fmt.Fprint(out, label)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(raw), nil
}
