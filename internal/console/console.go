package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/tickler/internal/domain"
	"github.com/phrazzld/tickler/internal/events"
	"github.com/phrazzld/tickler/internal/service"
)

// errInputClosed is returned by the prompt helpers when the input ends.
var errInputClosed = errors.New("console input closed")

const menu = `
Tickler
1. Add task
2. Show all tasks
3. Show pending tasks
4. Show completed tasks
5. Update task
6. Quit
Choose an option: `

// Console is an interactive menu bound to a ReminderService.
// Output is serialized so reminder notifications printed from worker
// goroutines do not interleave with menu output.
type Console struct {
	svc    service.ReminderService
	in     *bufio.Scanner
	out    io.Writer
	outMu  sync.Mutex
	logger *slog.Logger

	readerOnce sync.Once
	lines      chan inputLine
	done       chan struct{}
	doneOnce   sync.Once
}

// inputLine is one line read by the background reader, or its read error.
type inputLine struct {
	text string
	err  error
}

// New creates a Console reading from in and writing to out.
func New(svc service.ReminderService, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With("component", "console"),
		done:   make(chan struct{}),
	}
}

// ReminderHandler returns an event handler that prints reminder.fired events
// as "Reminder: <title> - <description>".
func (c *Console) ReminderHandler() events.EventHandler {
	return events.OnType(events.TypeReminderFired, events.HandlerFunc(
		func(ctx context.Context, event *events.Event) error {
			var p events.ReminderFiredPayload
			if err := event.UnmarshalPayload(&p); err != nil {
				return fmt.Errorf("failed to decode reminder payload: %w", err)
			}
			c.printf("Reminder: %s - %s\n", p.Title, p.Description)
			return nil
		},
	))
}

// Run shows the menu until the user quits, the input ends, or ctx is
// cancelled. Quitting and end of input are not errors.
func (c *Console) Run(ctx context.Context) error {
	defer c.doneOnce.Do(func() { close(c.done) })

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		c.printf("%s", menu)
		choice, err := c.readLine(ctx)
		if err != nil {
			return c.endOfInput(ctx, err)
		}

		switch choice {
		case "1":
			err = c.addTask(ctx)
		case "2":
			err = c.listAll(ctx)
		case "3":
			err = c.listByStatus(ctx, false)
		case "4":
			err = c.listByStatus(ctx, true)
		case "5":
			err = c.updateTask(ctx)
		case "6":
			return nil
		default:
			c.printf("Unknown command.\n")
		}

		if err != nil {
			if errors.Is(err, errInputClosed) || ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, service.ErrTaskNotFound) {
				c.printf("Task not found.\n")
				continue
			}
			c.logger.ErrorContext(ctx, "console command failed", "choice", choice, "error", err)
			c.printf("Error: %v\n", err)
		}
	}
}

func (c *Console) endOfInput(ctx context.Context, err error) error {
	if errors.Is(err, errInputClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}

func (c *Console) addTask(ctx context.Context) error {
	fields, err := c.readFields(ctx, "")
	if err != nil {
		return err
	}

	item, err := c.svc.AddTask(ctx, fields)
	if err != nil {
		return err
	}
	c.printf("Task added! Task id: %d. Reminder time: %s\n", item.ID, domain.FormatReminderTime(item.ReminderTime))
	return nil
}

func (c *Console) updateTask(ctx context.Context) error {
	id, err := c.promptInt(ctx, "Enter the task id to update: ", 1)
	if err != nil {
		return err
	}

	// Fail before asking for five fields the store would reject.
	if _, err := c.svc.GetTask(ctx, id); err != nil {
		return err
	}

	fields, err := c.readFields(ctx, "new ")
	if err != nil {
		return err
	}

	change, err := c.svc.UpdateTask(ctx, id, fields)
	if err != nil {
		return err
	}
	c.printf("Task updated!\n")
	if change.Completed {
		c.printf("Note: this task is already completed; its reminder will not fire again.\n")
	}
	return nil
}

func (c *Console) listAll(ctx context.Context) error {
	items, err := c.svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	c.printItems(items)
	return nil
}

func (c *Console) listByStatus(ctx context.Context, completed bool) error {
	items, err := c.svc.ListTasksByStatus(ctx, completed)
	if err != nil {
		return err
	}
	if completed {
		c.printf("Completed tasks:\n")
	} else {
		c.printf("Pending tasks:\n")
	}
	c.printItems(items)
	return nil
}

func (c *Console) printItems(items []domain.TaskItem) {
	if len(items) == 0 {
		c.printf("No tasks.\n")
		return
	}
	for _, item := range items {
		c.printf("%s\n", FormatItem(item))
	}
}

// FormatItem renders one item as a single menu line.
func FormatItem(item domain.TaskItem) string {
	return fmt.Sprintf("[%d] %s - %s - %s - %s - Reminder time: %s",
		item.ID,
		item.Title,
		item.Description,
		item.Priority,
		item.StatusLabel(),
		domain.FormatReminderTime(item.ReminderTime),
	)
}

// readFields prompts for the five editable fields. adjective is "" for add
// and "new " for update.
func (c *Console) readFields(ctx context.Context, adjective string) (domain.TaskItemFields, error) {
	var f domain.TaskItemFields

	title, err := c.promptNonEmpty(ctx, fmt.Sprintf("Enter the %stask title: ", adjective))
	if err != nil {
		return f, err
	}
	c.printf("Enter the %stask description: ", adjective)
	description, err := c.readLine(ctx)
	if err != nil {
		return f, err
	}
	at, err := c.promptReminderTime(ctx)
	if err != nil {
		return f, err
	}
	lead, err := c.promptInt(ctx, fmt.Sprintf("Enter the %sminutes before the reminder: ", adjective), 0)
	if err != nil {
		return f, err
	}
	priority, err := c.promptPriority(ctx)
	if err != nil {
		return f, err
	}

	f = domain.TaskItemFields{
		Title:                 title,
		Description:           description,
		ReminderTime:          at,
		ReminderBeforeMinutes: lead,
		Priority:              priority,
	}
	return f, nil
}

func (c *Console) promptNonEmpty(ctx context.Context, prompt string) (string, error) {
	for {
		c.printf("%s", prompt)
		line, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		c.printf("A value is required.\n")
	}
}

// promptInt re-prompts until the input is an integer not below minimum.
func (c *Console) promptInt(ctx context.Context, prompt string, minimum int) (int, error) {
	for {
		c.printf("%s", prompt)
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= minimum {
			return n, nil
		}
		c.printf("Please enter a whole number of at least %d.\n", minimum)
	}
}

func (c *Console) promptReminderTime(ctx context.Context) (time.Time, error) {
	for {
		c.printf("Enter the reminder date and time (format: dd.MM.yyyy HH:mm, UTC): ")
		line, err := c.readLine(ctx)
		if err != nil {
			return time.Time{}, err
		}
		t, err := domain.ParseReminderTime(line)
		if err == nil {
			return t, nil
		}
		c.printf("Invalid date and time format.\n")
	}
}

func (c *Console) promptPriority(ctx context.Context) (domain.Priority, error) {
	for {
		c.printf("Choose the task priority (Low, Medium, High): ")
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		p, err := domain.ParsePriority(line)
		if err == nil {
			return p, nil
		}
		c.printf("Invalid priority.\n")
	}
}

// readLine returns the next input line with surrounding whitespace removed.
// It returns ctx.Err() as soon as ctx is cancelled, even while the reader is
// still blocked on input.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.readerOnce.Do(c.startReader)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", errInputClosed
		}
		return line.text, line.err
	}
}

// startReader scans input on its own goroutine so a blocked read never
// holds up readLine. The goroutine exits when the input ends or, after Run
// has returned, at the next line it reads.
func (c *Console) startReader() {
	c.lines = make(chan inputLine)
	go func() {
		defer close(c.lines)
		for c.in.Scan() {
			if !c.send(inputLine{text: strings.TrimSpace(c.in.Text())}) {
				return
			}
		}
		if err := c.in.Err(); err != nil {
			c.send(inputLine{err: fmt.Errorf("failed to read input: %w", err)})
		}
	}()
}

func (c *Console) send(line inputLine) bool {
	select {
	case c.lines <- line:
		return true
	case <-c.done:
		return false
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
