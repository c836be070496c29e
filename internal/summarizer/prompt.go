package summarizer

import "fmt"

const systemPrompt = "You are a helpful assistant that creates concise, well-structured meeting summaries."

var styleInstructions = map[Style]string{
	StyleBrief:  "Create a concise summary in paragraph form.",
	StyleBullet: "Create a summary using bullet points for key topics.",
	StyleAction: "Focus on action items, decisions, and next steps.",
}

const summaryPrompt = `Please summarize the following meeting transcript. %s

Include:
- Key discussion points
- Important decisions made
- Action items and who is responsible
- Next steps or follow-up items
%s
Meeting Transcript:
%s

Please provide a well-structured summary:`

func buildPrompt(transcript string, opts Options) string {
	instruction, ok := styleInstructions[opts.Style]
	if !ok {
		instruction = styleInstructions[StyleBrief]
	}

	var limit string
	if opts.MaxLength > 0 {
		limit = fmt.Sprintf("\nKeep the summary under %d words.\n", opts.MaxLength)
	}

	return fmt.Sprintf(summaryPrompt, instruction, limit, transcript)
}
