package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/service"
	"github.com/tirasundara/momo-dashboard/internal/view"
	"github.com/tirasundara/momo-dashboard/pkg/fileutil"
)

const helpText = `Commands:
  search <text>      filter by SMS body or category (no text clears)
  type <category>    show one category (no category clears)
  amount <value>     exact amount in the list, minimum in charts and reports
  clear              remove every filter
  next, prev         move between pages
  page <n>           jump to page n
  list, charts       show the transaction table or the category charts
  summary            show the counters
  report [json|csv]  export a report of the filtered transactions
  refresh            reload the data
  quit               leave`

// session is a line-oriented dashboard driven by typed commands
type session struct {
	svc      *service.DashboardService
	renderer *view.Renderer
	sink     fileutil.Sink
	out      io.Writer
}

func newSession(svc *service.DashboardService, renderer *view.Renderer, sink fileutil.Sink, out io.Writer) *session {
	return &session{
		svc:      svc,
		renderer: renderer,
		sink:     sink,
		out:      out,
	}
}

// Run reads commands from in until quit, end of input or ctx is done
func (s *session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.showList()
	s.prompt()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if !s.handle(ctx, line) {
				return nil
			}
			s.prompt()
		}
	}
}

func (s *session) prompt() {
	fmt.Fprint(s.out, "> ")
}

// handle executes one command and reports whether the session continues
func (s *session) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "search":
		s.svc.UpdateCriteria(func(c *domain.Criteria) { c.Search = arg })
		s.showList()
	case "type":
		s.svc.UpdateCriteria(func(c *domain.Criteria) { c.Type = arg })
		s.showList()
	case "amount":
		s.svc.UpdateCriteria(func(c *domain.Criteria) { c.Amount = arg })
		s.showList()
	case "clear":
		s.svc.SetCriteria(domain.Criteria{})
		s.showList()
	case "next":
		s.navigate(s.svc.NextPage())
	case "prev", "previous":
		s.navigate(s.svc.PrevPage())
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid page %q\n", arg)
			return true
		}
		s.navigate(s.svc.GoToPage(n))
	case "list":
		s.showList()
	case "charts":
		s.run(show(s.svc, s.renderer, s.sink, s.out, "charts", ""))
	case "summary":
		s.run(show(s.svc, s.renderer, s.sink, s.out, "summary", ""))
	case "report":
		format := arg
		if format == "" {
			format = "json"
		}
		s.run(export(s.svc, s.renderer, s.sink, s.out, format))
	case "refresh":
		if err := s.svc.Refresh(ctx); err != nil {
			fmt.Fprintln(s.out, s.renderer.Error(err))
			return true
		}
		s.showList()
	default:
		fmt.Fprintf(s.out, "Unknown command %q, type 'help' for the list\n", cmd)
	}

	return true
}

func (s *session) navigate(_ int, err error) {
	if err != nil {
		s.run(err)
		return
	}
	s.showList()
}

func (s *session) showList() {
	s.run(show(s.svc, s.renderer, s.sink, s.out, "list", ""))
}

func (s *session) run(err error) {
	if err != nil {
		fmt.Fprintln(s.out, s.renderer.Error(err))
	}
}
