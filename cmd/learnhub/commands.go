package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"learnhub/internal/catalog"
	"learnhub/internal/coursepage"
	"learnhub/internal/enrollment"
	"learnhub/internal/model"
)

// terminal shows alerts and navigation targets on stdout.
type terminal struct {
	out io.Writer
}

func (t terminal) Alert(message string) {
	fmt.Fprintln(t.out, message)
}

func (t terminal) Navigate(path string) {
	fmt.Fprintf(t.out, "continue at %s\n", path)
}

func (a *app) page() *coursepage.Page {
	term := terminal{out: os.Stdout}
	return coursepage.New(a.sess, a.client, enrollment.NewSubmitter(a.client, term, term))
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.client.SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}

	if err := a.store.Save(sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("logged in as %s\n", sess.User.Email)
	return nil
}

func (a *app) logout() error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	fmt.Println("logged out")
	return nil
}

type listFlags struct {
	title string
	kind  string
}

func (f *listFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "only courses whose title contains this text")
	fs.StringVar(&f.kind, "type", "", "all, free or paid")
}

func (a *app) loadPage(ctx context.Context, f listFlags) (*coursepage.Page, []catalog.Row, error) {
	kind, err := catalog.ParseType(f.kind)
	if err != nil {
		return nil, nil, err
	}

	p := a.page()
	if err := p.Load(ctx); err != nil {
		return nil, nil, err
	}
	p.SetTitleFilter(f.title)
	p.SetTypeFilter(kind)

	return p, p.Rows(), nil
}

func (a *app) courses(ctx context.Context, args []string) error {
	var lf listFlags
	fs := flag.NewFlagSet("courses", flag.ContinueOnError)
	lf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, rows, err := a.loadPage(ctx, lf)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No courses at the moment")
		return nil
	}

	for i, row := range rows {
		printCourse(os.Stdout, i+1, row.Course)
	}
	return nil
}

func printCourse(w io.Writer, n int, c model.Course) {
	fmt.Fprintf(w, "%2d. %s\n    %v\n    by: %s\n    Price: %s\n    Enrolled: %d\n",
		n, c.Title, c.Categories, c.Educator, c.Price, c.Enrolled)
}

func (a *app) enroll(ctx context.Context, args []string) error {
	var lf listFlags
	var card model.CardDetails
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	lf.register(fs)
	n := fs.Int("row", 0, "row number as printed by courses with the same filters")
	fs.StringVar(&card.HolderName, "name", "", "card holder name")
	fs.StringVar(&card.Number, "number", "", "card number")
	fs.StringVar(&card.Expiry, "expiry", "", "card expiry MM/YY")
	fs.StringVar(&card.CVV, "cvv", "", "card CVV")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, rows, err := a.loadPage(ctx, lf)
	if err != nil {
		return err
	}

	if *n < 1 || *n > len(rows) {
		return fmt.Errorf("row %d not in listing of %d courses", *n, len(rows))
	}
	row := rows[*n-1]

	opened, err := p.Enroll(ctx, row)
	if errors.Is(err, coursepage.ErrLoginRequired) {
		return fmt.Errorf("%w: run learnhub login first", err)
	}
	if err != nil || !opened {
		return err
	}

	fmt.Printf("Payment for %s (%s)\n", row.Course.Title, row.Course.Price)
	p.SetCard(card)
	return p.SubmitPayment(ctx, row.Index)
}

func (a *app) enrolled(ctx context.Context) error {
	courses, err := a.client.EnrolledCourses(ctx)
	if err != nil {
		return err
	}

	for i, c := range courses {
		printCourse(os.Stdout, i+1, c)
		fmt.Printf("    open: %s\n", enrollment.CoursePath(c.ID, c.Title))
	}
	return nil
}

func (a *app) theme(args []string) error {
	if len(args) == 0 {
		dark, err := a.store.DarkMode()
		if err != nil {
			return err
		}
		if dark {
			fmt.Println("dark")
		} else {
			fmt.Println("light")
		}
		return nil
	}

	switch args[0] {
	case "dark":
		return a.store.SetDarkMode(true)
	case "light":
		return a.store.SetDarkMode(false)
	default:
		return fmt.Errorf("unknown theme %q", args[0])
	}
}
