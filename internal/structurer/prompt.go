package structurer

import (
	"fmt"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

const systemPrompt = "You are a precise data extraction assistant. You always return valid JSON and nothing else."

// buildPrompt renders the extraction instructions for one meal period.
// The rules mirror what the menu page actually shows: closed halls carry the
// literal "Closed for <meal>" text, hours are printed verbatim, and items
// are grouped under station headings.
func buildPrompt(text string, meal menu.MealType, now time.Time) string {
	return fmt.Sprintf(`You are a data extraction assistant. Parse the following menu text from Lion Dine's %[1]s page and structure it into JSON format.

The text contains information about multiple dining halls, each with:
- Hall name
- Operating hours (or "Closed for %[1]s")
- Stations (e.g., "Main Line", "Vegan Station", "500 Degrees", etc.)
- Food items under each station

IMPORTANT RULES:
1. If a hall says "Closed for %[1]s" or "No data available", set status to "closed" and include an empty stations array
2. Extract the exact hours shown (e.g., "7:30 AM to 11:00 AM")
3. Group food items by their station name
4. Preserve the exact food item names
5. The dining halls are typically: Ferris, JJ's, Faculty House, Grace Dodge, Johnny's, Fac Shack, John Jay, Hewitt, Chef Mike's, Diana, Chef Don's

Return a JSON object with this exact structure:
{
  "mealType": "%[1]s",
  "timestamp": "%[2]s",
  "diningHalls": [
    {
      "name": "Dining Hall Name",
      "hours": "X:XX AM to XX:XX AM",
      "status": "open" or "closed",
      "stations": [
        {
          "name": "Station Name",
          "items": ["item1", "item2", ...]
        }
      ]
    }
  ]
}

Menu Text:
%[3]s

Return ONLY the JSON object, no additional text or explanation.`, meal, now.UTC().Format(time.RFC3339), text)
}
