// Package quote picks motivational quotes shown next to overdue tasks.
package quote

var quotes = []string{
	"The secret of getting ahead is getting started.",
	"Done is better than perfect.",
	"You don't have to see the whole staircase, just take the first step.",
	"Action is the foundational key to all success.",
	"It always seems impossible until it's done.",
	"Small deeds done are better than great deeds planned.",
	"Well begun is half done.",
	"The best time to start was yesterday. The next best time is now.",
}

// For returns the quote for a task id. The same id always gets the same quote.
func For(id int) string {
	if id < 0 {
		id = -id
	}
	return quotes[id%len(quotes)]
}
