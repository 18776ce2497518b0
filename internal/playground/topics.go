// Package playground is the scripted chat demo on the portfolio page. It is
// a lookup table, not a model: a query is matched against a few keyword sets
// and answered with a canned block of text after some staged "thinking" steps.
package playground

import "strings"

// Topic is one canned answer and the keywords that select it.
type Topic struct {
	Name     string
	Keywords []string
	Reply    string
}

// Topics is checked in order; the first topic with a matching keyword wins.
var Topics = []Topic{
	{
		Name:     "about",
		Keywords: []string{"about", "who are you", "yourself", "hobby", "hobbies", "muay thai"},
		Reply: "I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes. " +
			"Most of my projects start with a simple idea and turn into a chance to learn something new. " +
			"When I'm not coding you'll usually find me training Muay Thai or shooting pool with friends.",
	},
	{
		Name:     "projects",
		Keywords: []string{"project", "built", "portfolio", "email client", "music", "recommend"},
		Reply: "A few things I've built:\n" +
			"- A terminal email client in Go with fuzzy finding, using the Charmbracelet TUI framework and go-imap.\n" +
			"- A terminal music player that streams YouTube Music through yt-dlp and mpv.\n" +
			"- A game recommender using TF-IDF vectors and cosine similarity, with interactive charts.\n" +
			"- This site: Go and Gin on the server, HTMX and Alpine.js in the browser.",
	},
	{
		Name:     "skills",
		Keywords: []string{"skill", "stack", "language", "golang", " go ", "tech", "framework", "tools"},
		Reply: "Day to day I write Go (Gin, Bubble Tea, SQLite) and Python for data work (pandas, scikit-learn). " +
			"On the front end I keep it light with HTMX, Alpine.js and Tailwind CSS.",
	},
	{
		Name:     "experience",
		Keywords: []string{"experience", "work", "job", "career", "employ", "target"},
		Reply: "Presentation Expert at Target since Aug 2023: over 300 merchandising transitions on tight timelines " +
			"and streamlined backroom inventory. Manager at Jasons Catered Events since Aug 2016: customised menus, " +
			"event AV troubleshooting and supply coordination between venues.",
	},
	{
		Name:     "education",
		Keywords: []string{"education", "degree", "school", "university", "study", "certif", "wgu"},
		Reply: "Bachelor of Computer Science from Western Governors University (2019 to 2023), Magna Cum Laude with a 3.8 GPA. " +
			"CompTIA Project+ certified in agile project management.",
	},
	{
		Name:     "contact",
		Keywords: []string{"contact", "email", "hire", "reach", "touch", "resume"},
		Reply:    "The contact form at the bottom of the page goes straight to my inbox. I usually reply within a day or two.",
	},
}

// Fallback answers queries that match no topic.
var Fallback = Topic{
	Name:  "fallback",
	Reply: "I can tell you about me, my projects, skills, experience, education, or how to get in touch. Try asking about one of those.",
}

// Classify returns the first topic whose keyword occurs in text, ignoring
// case, or Fallback.
func Classify(text string) Topic {
	q := " " + strings.ToLower(text) + " "
	for _, t := range Topics {
		for _, kw := range t.Keywords {
			if strings.Contains(q, kw) {
				return t
			}
		}
	}
	return Fallback
}

// TopicNames lists the topic names, fallback last.
func TopicNames() []string {
	names := make([]string, 0, len(Topics)+1)
	for _, t := range Topics {
		names = append(names, t.Name)
	}
	return append(names, Fallback.Name)
}
