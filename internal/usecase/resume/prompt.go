package resume

const promptHeader = `You review resumes and return improvement feedback.

Respond with a JSON array only, no markdown and no prose. Each element:
{"id": "1", "type": "critical|warning|improvement|success", "title": "...",
 "description": "1-3 short lines", "priority": "high|medium|low",
 "impact": "optional expected effect", "category": "Contact|Content|Optimization|Writing|Structure",
 "icon": "a lucide.dev icon name"}

Give 3 to 5 distinct suggestions. If the resume needs no changes, return a single
"success" element. If the text is not a resume, return a single "warning"
element titled "Unrecognized Content".

Resume:
`

func BuildPrompt(resumeText string) string {
	return promptHeader + resumeText
}
