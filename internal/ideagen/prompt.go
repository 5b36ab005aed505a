// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideagen

import (
	"bytes"
	"strings"
	"text/template"
)

// systemPrompt sets the persona for every request.
const systemPrompt = `You are a creative and fun date idea generator who loves adding unexpected twists to simple activities.
You focus on making everyday moments feel special and memorable.
Your ideas should feel personal, warm, and exciting to try right away.
Always include specific details that make the idea come alive.`

// userPromptTmpl carries the formatting rules and the avoid-list. The model
// is asked for exactly two lines, "Title:" then "Description:".
var userPromptTmpl = template.Must(template.New("idea").Parse(`Give me a quick, real-life date idea that two people can do right now in Illinois.
Rules:
1. Use a casual, buddy-like tone, like texting a friend.
2. Keep it under $30 total.
3. Mention specific spots like Dunkin', Starbucks, Chipotle, Taco Bell, Panda Express, Wendy's, Target, Woodfield Mall, Gurnee Mills, Fox Valley Mall, HIP, AMC Theatres, Dave & Buster's, bowling alleys, or parking spots.
4. Recommend specific trending movies, music, or TikTok activities so users don't have to choose.
5. Make each idea logically structured, with one main activity that makes sense (no combining things that would conflict, like bowling and a movie at the same time).
6. Keep it short, clear, and easy to do within 30 minutes of seeing the idea.

Format as:
Title: [2-4 catchy words]
Description: [1-2 quick sentences with specifics]

Examples:
- "AMC & Frosties" - Catch a late-night movie at AMC, then swing by Wendy's for Frosties on the way home.
- "Taco Bell & TikToks" - Grab Taco Bell takeout, park somewhere chill, and watch trending TikTok videos together.
- "Starbucks & Mall Walk" - Get iced coffees from Starbucks and stroll through Woodfield Mall, people-watching and rating the best outfits.
- "Dave & Buster's Showdown" - Head to Dave & Buster's, spend $10 each on games, and see who can win the weirdest prize.
- "Target Snack Run" - Hit Target, each grab a $5 snack, and sit in the car listening to trending TikTok songs while rating each snack.
- "Bowling & Pizza" - Bowl a quick game at the nearest alley, then share a small pizza from the place next door.
- "Dunkin' & Netflix" - Get hot chocolates from Dunkin', park somewhere quiet, and stream an episode of *Money Heist* on your phone.

Previous ideas to avoid: {{.Avoid}}
`))

// renderPrompt executes the user prompt template with the given previous titles.
func renderPrompt(previous []string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Avoid string }{Avoid: strings.Join(previous, ", ")}
	if err := userPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
