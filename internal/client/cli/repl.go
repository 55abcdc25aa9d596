package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

type command struct {
	usage string
	help  string
	// auth marks commands that need a session; they are hidden from help
	// when logged out but still run, so the server answer decides.
	auth bool
	run  func(ctx context.Context, args []string) error
}

var errExit = errors.New("exit")

func (a *App) commands() map[string]command {
	return map[string]command{
		"register": {usage: "register", help: "create an account", run: a.register},
		"login":    {usage: "login", help: "log in with email and password", run: a.login},
		"logout":   {usage: "logout", help: "revoke the session", auth: true, run: a.logout},
		"whoami":   {usage: "whoami", help: "show the local token claims", auth: true, run: a.whoami},
		"profile":  {usage: "profile", help: "ask the server who you are", auth: true, run: a.profile},
		"refresh":  {usage: "refresh", help: "rotate the token pair now", auth: true, run: a.refresh},

		"offers":       {usage: "offers", help: "list offers", auth: true, run: a.listOffers},
		"offer-create": {usage: "offer-create", help: "create an offer (admin)", auth: true, run: a.createOffer},
		"purchase":     {usage: "purchase <offerId>", help: "buy an offer", auth: true, run: a.purchase},
		"approve":      {usage: "approve <userOfferId>", help: "approve a purchase (admin)", auth: true, run: a.approve},
		"reject":       {usage: "reject <userOfferId>", help: "reject a purchase (admin)", auth: true, run: a.reject},
		"pending":      {usage: "pending [userId]", help: "list pending purchases", auth: true, run: a.pending},
		"purchases":    {usage: "purchases [userId]", help: "list purchases that were not rejected", auth: true, run: a.purchases},
		"access":       {usage: "access [userId]", help: "check course access", auth: true, run: a.access},

		"lessons":       {usage: "lessons", help: "list course lessons", auth: true, run: a.listLessons},
		"lesson-create": {usage: "lesson-create", help: "create a lesson (admin)", auth: true, run: a.createLesson},

		"questions":       {usage: "questions [lessonId]", help: "list test questions", auth: true, run: a.listQuestions},
		"question-create": {usage: "question-create", help: "add a test question", auth: true, run: a.createQuestion},
		"answer-create":   {usage: "answer-create <questionId>", help: "add an answer to a question", auth: true, run: a.createAnswer},

		"upload": {usage: "upload <path>", help: "upload a body-analysis CSV or video", auth: true, run: a.upload},

		"help": {usage: "help", help: "show this list", run: a.help},
		"exit": {usage: "exit", help: "leave", run: func(context.Context, []string) error { return errExit }},
	}
}

func (a *App) repl(ctx context.Context) {
	cmds := a.commands()
	cmds["quit"] = cmds["exit"]

	for ctx.Err() == nil {
		fmt.Fprintf(a.out, "school %s> ", a.status())
		line, err := a.prompt.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.printErr(err)
			}
			a.println()
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, ok := cmds[fields[0]]
		if !ok {
			a.println("Unknown command:", fields[0])
			continue
		}

		err = cmd.run(ctx, fields[1:])
		if errors.Is(err, errExit) {
			a.println("Bye!")
			return
		}
		if err != nil {
			a.printErr(err)
		}
	}
}

func (a *App) help(context.Context, []string) error {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for name, c := range cmds {
		if c.auth && !a.loggedIn() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := cmds[name]
		fmt.Fprintf(a.out, "  %-28s %s\n", c.usage, c.help)
	}
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printErr(err error) {
	fmt.Fprintf(a.out, "error [%s]: %v\n", errorClass(err), err)
	if hint := errorHint(err); hint != "" {
		a.println(hint)
	}
}

func usageErr(usage string) error {
	return fmt.Errorf("%w: usage: %s", errUsage, usage)
}

var errUsage = errors.New("bad arguments")
