package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/roach88/todolor/internal/quote"
	"github.com/roach88/todolor/internal/task"
)

const indent = "    "

// renderTasks writes the text form of tasks.
//
//	[id] title
//	    description
//	    due 2006-01-02 15:04:05
//	    "quote"                    (overdue only)
//	    done 2006-01-02 15:04:05   (completed only)
//
// Every task is followed by a blank line.
func renderTasks(w io.Writer, tasks []task.Task, now time.Time, loc *time.Location, p Painter) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range tasks {
		renderTask(w, t, now, loc, p)
	}
}

func renderTask(w io.Writer, t task.Task, now time.Time, loc *time.Location, p Painter) {
	fmt.Fprintf(w, "[%d] %s\n", t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintln(w, indent+t.Description)
	}
	if t.Deadline != nil {
		line := "due " + formatMillis(*t.Deadline, loc)
		if t.IsOverdue(now) {
			fmt.Fprintln(w, indent+p.Error(line))
			fmt.Fprintln(w, indent+p.Warning(fmt.Sprintf("%q", quote.For(t.ID))))
		} else {
			fmt.Fprintln(w, indent+line)
		}
	}
	if t.Completed != nil {
		fmt.Fprintln(w, indent+p.Success("done "+formatMillis(*t.Completed, loc)))
	}
	fmt.Fprintln(w)
}
