package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"

	"github.com/scusemua/chained-hashmap/common/hashmap"
	"github.com/scusemua/chained-hashmap/common/utils"
)

const (
	prompt         = "> "
	fillValueLen   = 8
	emptyResult    = "(empty)"
	nilResult      = "(nil)"
	okResult       = "OK"
	maxFillEntries = 1_000_000
)

// Console interprets line commands against a string-valued hashmap.Store.
type Console struct {
	log logger.Logger

	store  hashmap.Store[string]
	out    io.Writer
	styled bool
}

// New creates a Console that writes its results to out.
//
// When styled is set, PRINT colours the bucket listing and errors are printed in red.
func New(store hashmap.Store[string], out io.Writer, styled bool) *Console {
	c := &Console{
		store:  store,
		out:    out,
		styled: styled,
	}
	config.InitLogger(&c.log, c)

	return c
}

// Run reads commands from in until EXIT, QUIT or end of input.
//
// Command failures are reported to the output and do not stop the loop.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(c.out, prompt); err != nil {
			return err
		}

		if !scanner.Scan() {
			break
		}

		quit, err := c.Execute(scanner.Text())
		if err != nil {
			c.log.Debug("Command \"%s\" failed: %v", scanner.Text(), err)
			c.printError(err)
		}

		if quit {
			return nil
		}
	}

	return scanner.Err()
}

// Execute runs a single command line. It returns true when the line asks the console to exit.
func (c *Console) Execute(line string) (quit bool, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}

	command, args := strings.ToLower(parts[0]), parts[1:]

	switch command {
	case "set":
		err = c.set(args, afterFields(line, 2))
	case "get":
		err = c.get(args)
	case "has":
		err = c.has(args)
	case "del", "delete":
		err = c.del(args)
	case "len", "size":
		err = c.length(args)
	case "cap":
		err = c.capacity(args)
	case "keys":
		err = c.keys(args)
	case "values":
		err = c.values(args)
	case "entries":
		err = c.entries(args)
	case "clear":
		err = c.clear(args)
	case "expand":
		err = c.expand(args)
	case "reverse":
		err = c.reverse(args)
	case "print":
		err = c.print(args)
	case "json":
		err = c.json(args)
	case "fill":
		err = c.fill(args)
	case "help":
		c.printHelp()
	case "exit", "quit":
		return true, nil
	default:
		err = errors.Wrapf(ErrUnknownCommand, "\"%s\"", parts[0])
	}

	return false, err
}

// set stores value, the rest of the line after the key with its inner spacing intact.
func (c *Console) set(args []string, value string) error {
	if len(args) < 2 {
		return usage("SET key value")
	}

	c.store.Store(args[0], value)
	return c.println(okResult)
}

func (c *Console) get(args []string) error {
	if len(args) != 1 {
		return usage("GET key")
	}

	value, ok := c.store.Load(args[0])
	if !ok {
		return c.println(nilResult)
	}
	return c.println(value)
}

func (c *Console) has(args []string) error {
	if len(args) != 1 {
		return usage("HAS key")
	}

	_, ok := c.store.Load(args[0])
	return c.println(strconv.FormatBool(ok))
}

func (c *Console) del(args []string) error {
	if len(args) != 1 {
		return usage("DEL key")
	}

	return c.println(strconv.FormatBool(c.store.Delete(args[0])))
}

func (c *Console) length(args []string) error {
	if len(args) != 0 {
		return usage("LEN")
	}

	return c.println(strconv.Itoa(c.store.Len()))
}

func (c *Console) capacity(args []string) error {
	if len(args) != 0 {
		return usage("CAP")
	}

	bucketed, err := c.bucketed("CAP")
	if err != nil {
		return err
	}
	return c.println(strconv.Itoa(bucketed.Capacity()))
}

func (c *Console) keys(args []string) error {
	if len(args) != 0 {
		return usage("KEYS")
	}

	return c.printLines(c.store.Keys())
}

func (c *Console) values(args []string) error {
	if len(args) != 0 {
		return usage("VALUES")
	}

	values := make([]string, 0, c.store.Len())
	c.store.Range(func(_ string, value string) bool {
		values = append(values, value)
		return true
	})
	return c.printLines(values)
}

func (c *Console) entries(args []string) error {
	if len(args) != 0 {
		return usage("ENTRIES")
	}

	entries := make([]string, 0, c.store.Len())
	c.store.Range(func(key string, value string) bool {
		entries = append(entries, fmt.Sprintf("[%s, %s]", key, value))
		return true
	})
	return c.printLines(entries)
}

func (c *Console) clear(args []string) error {
	if len(args) != 0 {
		return usage("CLEAR")
	}

	c.store.Clear()
	return c.println(okResult)
}

func (c *Console) expand(args []string) error {
	if len(args) != 0 {
		return usage("EXPAND")
	}

	bucketed, err := c.bucketed("EXPAND")
	if err != nil {
		return err
	}

	bucketed.Expand()
	return c.println(strconv.Itoa(bucketed.Capacity()))
}

func (c *Console) reverse(args []string) error {
	if len(args) != 0 {
		return usage("REVERSE")
	}

	bucketed, err := c.bucketed("REVERSE")
	if err != nil {
		return err
	}

	bucketed.Reverse()
	return c.println(okResult)
}

func (c *Console) print(args []string) error {
	if len(args) != 0 {
		return usage("PRINT")
	}

	bucketed, err := c.bucketed("PRINT")
	if err != nil {
		return err
	}

	if c.styled {
		return bucketed.PrintMapStyled(c.out)
	}
	return bucketed.PrintMap(c.out)
}

func (c *Console) json(args []string) error {
	if len(args) != 0 {
		return usage("JSON")
	}

	bucketed, err := c.bucketed("JSON")
	if err != nil {
		return err
	}

	data, err := bucketed.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode map")
	}
	return c.println(string(data))
}

func (c *Console) fill(args []string) error {
	if len(args) != 1 {
		return usage("FILL n")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > maxFillEntries {
		return errors.Wrapf(ErrUsage, "usage: FILL n, with 0 <= n <= %d", maxFillEntries)
	}

	for i := 0; i < n; i++ {
		c.store.Store(utils.RandomKey(), utils.GenerateRandomString(fillValueLen))
	}

	c.log.Debug("Inserted %d random entries. Map now holds %d entries.", n, c.store.Len())
	return c.println(okResult)
}

// afterFields returns line without its first n whitespace-separated fields and the whitespace
// that follows them.
func afterFields(line string, n int) string {
	for i := 0; i < n; i++ {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		end := strings.IndexFunc(line, unicode.IsSpace)
		if end < 0 {
			return ""
		}
		line = line[end:]
	}

	return strings.TrimLeftFunc(line, unicode.IsSpace)
}

func (c *Console) bucketed(command string) (hashmap.Bucketed, error) {
	bucketed, ok := c.store.(hashmap.Bucketed)
	if !ok {
		return nil, errors.Wrapf(hashmap.ErrUnsupported, "%s", command)
	}
	return bucketed, nil
}

func (c *Console) println(line string) error {
	_, err := fmt.Fprintln(c.out, line)
	return err
}

func (c *Console) printLines(lines []string) error {
	if len(lines) == 0 {
		return c.println(emptyResult)
	}

	for _, line := range lines {
		if err := c.println(line); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) printError(err error) {
	msg := fmt.Sprintf("Error: %v", err)
	if c.styled {
		msg = utils.RedStyle.Render(msg)
	}
	_ = c.println(msg)
}

func (c *Console) printHelp() {
	_ = c.printLines([]string{
		"Available commands:",
		"  SET key value   - Store a key-value pair",
		"  GET key         - Retrieve a value by key",
		"  HAS key         - Check whether a key is present",
		"  DEL key         - Remove a key-value pair",
		"  LEN             - Show the number of entries",
		"  CAP             - Show the number of buckets",
		"  KEYS            - List all keys",
		"  VALUES          - List all values",
		"  ENTRIES         - List all [key, value] pairs",
		"  CLEAR           - Remove every entry",
		"  EXPAND          - Grow the bucket array and rehash",
		"  REVERSE         - Reverse the chain of every bucket",
		"  PRINT           - Print every bucket's chain",
		"  JSON            - Print the entries as JSON",
		"  FILL n          - Insert n random entries",
		"  HELP            - Show this help",
		"  EXIT/QUIT       - Exit the program",
	})
}
