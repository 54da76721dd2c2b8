package service

// ExtractionSystemPrompt instructs the model to act as a structured
// extractor and reply with JSON only.
const ExtractionSystemPrompt = `You extract structured recipe data from web page content. You respond with a single JSON object and nothing else: no explanations, no markdown fences.`

const extractionPromptHeader = `Extract the recipe from the following web page content. Return ONLY a JSON object with exactly this structure:

{
    "title": "Recipe title",
    "description": "Short description or null",
    "images": [
        {"url": "https://example.com/photo.jpg", "altText": "optional alt text", "order": 1}
    ],
    "ingredients": [
        {"name": "harina", "amount": "2", "unit": "tazas"}
    ],
    "instructions": [
        {"step": 1, "description": "Mezclar los ingredientes secos"}
    ],
    "prepTime": 20,
    "cookTime": 45,
    "servings": 4,
    "difficulty": "Medio",
    "recipeType": "Postre",
    "tags": ["horno", "tradicional"]
}

Rules:
- Include at most 3 images and only ones with full absolute URLs.
- Number instructions sequentially starting from 1.
- "difficulty" must be exactly one of: "Fácil", "Medio", "Difícil".
- "prepTime" and "cookTime" are minutes as numbers.
- Use null (never omit the field) for any scalar value you cannot determine.
- "unit" may be null when the amount has no unit.
- "tags" is an array of short lowercase strings; use [] when none apply.

Web page content:
`

// BuildExtractionPrompt renders the fixed instruction template around the
// sanitized page content. Deterministic string template, no side effects.
func BuildExtractionPrompt(sanitizedHTML string) string {
	return extractionPromptHeader + sanitizedHTML
}
