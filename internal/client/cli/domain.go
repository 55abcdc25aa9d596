package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/schoolauth/internal/api"
)

func (a *App) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	_ = w.Flush()
}

func (a *App) listOffers(ctx context.Context, _ []string) error {
	offers, err := a.offers.List(ctx)
	if err != nil {
		return err
	}
	a.table("ID\tTITLE\tPRICE\tHOURS", func(w *tabwriter.Writer) {
		for _, o := range offers {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n", o.ID, o.Title, o.Price, o.DurationHours)
		}
	})
	return nil
}

func (a *App) createOffer(ctx context.Context, _ []string) error {
	var req api.CreateOfferRequest
	var err error
	if req.Title, err = a.prompt.Text("Title"); err != nil {
		return err
	}
	if req.Description, err = a.prompt.Text("Description"); err != nil {
		return err
	}
	if req.Price, err = a.prompt.Float("Price"); err != nil {
		return err
	}
	if req.DurationHours, err = a.prompt.Int("Duration (hours)"); err != nil {
		return err
	}

	o, err := a.offers.Create(ctx, req)
	if err != nil {
		return err
	}
	a.println("Created offer", o.ID)
	return nil
}

func (a *App) purchase(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("purchase <offerId>")
	}
	uo, err := a.offers.Purchase(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Purchase %s is %s\n", uo.ID, uo.Status)
	return nil
}

func (a *App) approve(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("approve <userOfferId>")
	}
	uo, err := a.offers.Approve(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Purchase %s is %s\n", uo.ID, uo.Status)
	return nil
}

func (a *App) reject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("reject <userOfferId>")
	}
	uo, err := a.offers.Reject(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Purchase %s is %s\n", uo.ID, uo.Status)
	return nil
}

func (a *App) pending(ctx context.Context, args []string) error {
	userID, err := a.currentUserID(args, "pending <userId>")
	if err != nil {
		return err
	}
	list, err := a.offers.Pending(ctx, userID)
	if err != nil {
		return err
	}
	a.table("ID\tOFFER\tSTATUS\tCREATED", func(w *tabwriter.Writer) {
		for _, uo := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", uo.ID, uo.OfferID, uo.Status, uo.CreatedAt.Format("2006-01-02 15:04"))
		}
	})
	return nil
}

func (a *App) purchases(ctx context.Context, args []string) error {
	userID, err := a.currentUserID(args, "purchases <userId>")
	if err != nil {
		return err
	}
	list, err := a.offers.Purchases(ctx, userID)
	if err != nil {
		return err
	}
	a.table("ID\tOFFER\tSTATUS\tEXPIRES", func(w *tabwriter.Writer) {
		for _, uo := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", uo.ID, uo.OfferID, uo.Status, uo.ExpiresAt.Format("2006-01-02 15:04"))
		}
	})
	return nil
}

func (a *App) access(ctx context.Context, args []string) error {
	userID, err := a.currentUserID(args, "access <userId>")
	if err != nil {
		return err
	}
	res, err := a.offers.Access(ctx, userID)
	if err != nil {
		return err
	}
	if res.HasAccess {
		a.println("Access granted")
	} else {
		a.println("No access")
	}
	return nil
}

func (a *App) listLessons(ctx context.Context, _ []string) error {
	lessons, err := a.lessons.List(ctx)
	if err != nil {
		return err
	}
	a.table("#\tID\tTITLE\tVIDEO", func(w *tabwriter.Writer) {
		for _, l := range lessons {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.OrderIndex, l.ID, l.Title, l.VideoURL)
		}
	})
	return nil
}

func (a *App) createLesson(ctx context.Context, _ []string) error {
	var req api.CreateLessonRequest
	var err error
	if req.Title, err = a.prompt.Text("Title"); err != nil {
		return err
	}
	if req.Description, err = a.prompt.Text("Description"); err != nil {
		return err
	}
	if req.VideoURL, err = a.prompt.Text("Video URL"); err != nil {
		return err
	}
	if req.OrderIndex, err = a.prompt.Int("Order"); err != nil {
		return err
	}

	l, err := a.lessons.Create(ctx, req)
	if err != nil {
		return err
	}
	a.println("Created lesson", l.ID)
	return nil
}

func (a *App) listQuestions(ctx context.Context, args []string) error {
	var lessonID string
	if len(args) > 0 {
		lessonID = args[0]
	}
	qs, err := a.questions.List(ctx, lessonID)
	if err != nil {
		return err
	}
	for _, q := range qs {
		fmt.Fprintf(a.out, "[%s] %s (%d pts)\n", q.ID, q.Text, q.Points)
		for _, ans := range q.Answers {
			mark := " "
			if ans.Correct {
				mark = "*"
			}
			fmt.Fprintf(a.out, "   %s %s\n", mark, ans.Text)
		}
	}
	return nil
}

func (a *App) createQuestion(ctx context.Context, _ []string) error {
	var req api.CreateQuestionRequest
	var err error
	if req.LessonID, err = a.prompt.Text("Lesson ID"); err != nil {
		return err
	}
	if req.Text, err = a.prompt.Text("Question"); err != nil {
		return err
	}
	if req.Points, err = a.prompt.Int("Points"); err != nil {
		return err
	}

	q, err := a.questions.Create(ctx, req)
	if err != nil {
		return err
	}
	a.println("Created question", q.ID)
	return nil
}

func (a *App) createAnswer(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("answer-create <questionId>")
	}
	var req api.CreateAnswerRequest
	var err error
	if req.Text, err = a.prompt.Text("Answer"); err != nil {
		return err
	}
	if req.Correct, err = a.prompt.Bool("Correct?"); err != nil {
		return err
	}

	ans, err := a.questions.AddAnswer(ctx, args[0], req)
	if err != nil {
		return err
	}
	a.println("Created answer", ans.ID)
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("upload <path>")
	}
	f, err := a.openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := a.uploads.Upload(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %d bytes as %s\n", res.Size, res.Key)
	return nil
}
