package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"taskboard/internal/client"
)

const usage = `usage: taskctl <command> [flags]

commands:
  register   create an account        (-user, -pass)
  login      log in and store a token (-user, -pass)
  logout     drop the stored token
  whoami     show the logged-in username
  rename     change username          (-to)
  passwd     change password          (-old, -new)
  list       list tasks
  add        create a task            (-title, -desc, -priority, -deadline)
  move       move a task to a column  (-id, -status)
  done       mark a task Done         (-id)
  rm         delete a task            (-id)

environment:
  TASKBOARD_SERVER  base URL of the server (default http://localhost:8080)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("TASKBOARD_SERVER")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		fail("session path: %v", err)
	}
	session, err := client.OpenSession(sessionPath)
	if err != nil {
		fail("open session: %v", err)
	}

	api := client.New(baseURL, session)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, api, session, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, client.ErrNoSession) || errors.Is(err, client.ErrUnauthorized) {
			fail("%v (try 'taskctl login')", err)
		}
		fail("%v", err)
	}
}

func run(ctx context.Context, api *client.Client, session *client.Session, command string, args []string) error {
	switch command {
	case "register":
		user, pass := credentialFlags(command, args)
		if err := api.Register(ctx, user, pass); err != nil {
			return err
		}
		fmt.Println("registered; log in with 'taskctl login'")
		return nil

	case "login":
		user, pass := credentialFlags(command, args)
		if err := api.Login(ctx, user, pass); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", user)
		return nil

	case "logout":
		if err := api.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "whoami":
		if !session.Active() {
			return client.ErrNoSession
		}
		username, err := api.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Println(username)
		return nil

	case "rename":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		to := fs.String("to", "", "new username")
		fs.Parse(args)
		username, err := api.ChangeUsername(ctx, *to)
		if err != nil {
			return err
		}
		fmt.Printf("username is now %s\n", username)
		return nil

	case "passwd":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		oldPass := fs.String("old", "", "current password")
		newPass := fs.String("new", "", "new password")
		fs.Parse(args)
		if err := api.ChangePassword(ctx, *oldPass, *newPass, *newPass); err != nil {
			return err
		}
		fmt.Println("password changed")
		return nil

	case "list":
		tasks, err := api.ListTasks(ctx)
		if err != nil {
			return err
		}
		printTasks(tasks)
		return nil

	case "add":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		title := fs.String("title", "", "task title")
		desc := fs.String("desc", "", "description")
		priority := fs.String("priority", "", "Low, Medium or High")
		deadline := fs.String("deadline", "", "deadline (YYYY-MM-DD)")
		fs.Parse(args)
		task, err := api.CreateTask(ctx, client.NewTask{
			Title:       *title,
			Description: *desc,
			Priority:    *priority,
			Deadline:    *deadline,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created task %d\n", task.ID)
		return nil

	case "move":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.Int64("id", 0, "task id")
		status := fs.String("status", "", "To Do, In Progress or Done")
		fs.Parse(args)
		task, err := api.MoveTask(ctx, *id, *status)
		if err != nil {
			return err
		}
		fmt.Printf("task %d is now %q\n", task.ID, task.Status)
		return nil

	case "done":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.Int64("id", 0, "task id")
		fs.Parse(args)
		task, err := api.MoveTask(ctx, *id, "Done")
		if err != nil {
			return err
		}
		fmt.Printf("task %d is now %q\n", task.ID, task.Status)
		return nil

	case "rm":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.Int64("id", 0, "task id")
		fs.Parse(args)
		if err := api.DeleteTask(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted task %d\n", *id)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "taskctl: "+format+"\n", args...)
	os.Exit(1)
}

func credentialFlags(command string, args []string) (string, string) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	fs.Parse(args)
	return *user, *pass
}

func printTasks(tasks []client.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDEADLINE\tTITLE")
	for _, t := range tasks {
		deadline := t.Deadline
		if len(deadline) >= 10 {
			deadline = deadline[:10]
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, deadline, t.Title)
	}
	w.Flush()
}
