package llm

// Address structuring prompts

const SystemPromptAddressParser = `You split free-text postal addresses into structured components.

The addresses are mostly French business addresses, e.g. "10 rue Example, 75001 Paris".
Some have no postal code or city at all (e.g. "Lieu-dit Les Chênes"); in that case put
the entire text in "line" and leave "postal_code" and "city" empty.

Always output valid JSON, nothing else.`

const UserPromptAddressParse = `Split this address into components:

---
%s
---

Output JSON with this structure:
{
  "line": "string",
  "postal_code": "string",
  "city": "string"
}`
