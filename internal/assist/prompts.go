package assist

const generateTasksPrompt = `You are an expert project manager and productivity coach. I will give you a goal.
Break this goal down into a logical sequence of concrete, actionable steps (tasks).

Guidelines:
1. Create between 3 to 8 tasks, depending on complexity.
2. Ensure tasks are atomic (can be completed in one sitting).
3. Use clear, action-oriented titles (start with a verb).
4. Assign realistic priorities.
5. Suggest a due date offset (days from now) for each task to spread them out logically.

Return ONLY a raw JSON array. Do not wrap it in markdown or code blocks.

Structure for each task object:
- title: string (Action-oriented, max 60 chars)
- description: string (Why this is important and how to do it)
- priority: "High" | "Medium" | "Low"
- dueDateOffset: number (0 for today, 1 for tomorrow, etc.)

Goal: "%s"`

const enrichTaskPrompt = `You are a task management expert. Analyze the task below and provide smart suggestions.

Task Title: %s
Description: %s

Analyze and suggest:
1. Priority: "High", "Medium", or "Low" (based on urgency keywords like "urgent", "asap", "critical", "bug", "fix")
2. Tags: Array of 1-3 relevant tags from: Bug, Feature, Design, Auth, Frontend, Backend, API, UI, UX, Database, Testing, Documentation, Critical, Enhancement
3. DueDateOffset: Number of days from today (e.g., 1 for urgent, 3 for normal, 7 for long-term)
4. Confidence: 0.0 to 1.0 score for how confident you are

Return ONLY valid JSON in this exact format:
{
  "priority": "High",
  "tags": ["Bug", "Critical"],
  "dueDateOffset": 1,
  "confidence": 0.95
}`

const searchPrompt = `You are a search query parser. Convert natural language queries into task filters.

Today's date: %s

Available filter fields:
- priority: "High", "Medium", or "Low"
- status: "To Do", "In Progress", or "Completed"
- titleContains: substring to match in the task title (case-insensitive)
- dueBefore / dueAfter: ISO date strings bounding the due date

User Query: "%s"

Examples:
- "high priority tasks" → {"priority": "High"}
- "tasks due this week" → {"dueAfter": "2026-02-03", "dueBefore": "2026-02-09"}
- "overdue tasks" → {"dueBefore": today's date}
- "bugs in login" → {"titleContains": "login"}

Return ONLY valid JSON in this exact format:
{
  "filters": { <filter object using the fields above> },
  "interpretation": "Human-readable description of what you're searching for"
}

If the query is ambiguous, make your best guess.`

const enrichLinkPrompt = `Analyze this URL and metadata to generate a "Cool" and "Engaging" summary.

URL: %s
Scraped Title: %s
Scraped Description: %s

Tasks:
1. Category: Determine the BEST category. You can use standard tags (Social, News, Tools) BUT if the content is niche, CREATE a specific one (e.g., "Prediction Market", "Crypto", "AI", "Recipes"). Be specific!
2. Generate a NEW Title:
   - IF Category is "News" or similar: Keep it professional, factual, and close to the original headline. Don't be "cool".
   - ELSE: Make it "Cool", "Punchy", and "Modern" (Max 7 words). Remove words like "Betting Odds", "Predictions", "Market".
   - Focus on the EVENT or TOPIC.
3. Description: Write a single, interesting sentence that captures the essence.

Return JSON:
{
  "title": "Final Title",
  "description": "Final Description",
  "category": "Category",
  "image": "%s"
}`
