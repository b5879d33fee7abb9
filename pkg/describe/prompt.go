package describe

import "fmt"

// systemMessage primes the model's role before the per-image prompt.
const systemMessage = `You are a precise visual scene analyst. You examine a single photograph and produce a structured inventory of the physical objects in it: their visual attributes, their spatial relations to each other, and what each object is for. You reply with JSON only, never prose and never markdown fences.`

// sceneSchema is the JSON Schema replies must conform to. It mirrors
// the scene document accepted by scene.Parse.
const sceneSchema = `{
  "type": "object",
  "properties": {
    "image_name": { "type": "string" },
    "objects": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": { "type": "integer" },
          "name": { "type": "string" },
          "bounding_box": {
            "type": "object",
            "properties": {
              "x_min": { "type": "number" },
              "y_min": { "type": "number" },
              "x_max": { "type": "number" },
              "y_max": { "type": "number" }
            },
            "required": ["x_min", "y_min", "x_max", "y_max"]
          },
          "center": {
            "type": "object",
            "properties": {
              "x": { "type": "number" },
              "y": { "type": "number" }
            },
            "required": ["x", "y"]
          },
          "attributes": {
            "type": "object",
            "properties": {
              "color": { "type": "string" },
              "size": { "type": "string" },
              "position": { "type": "string" },
              "shape": { "type": "string" },
              "material": { "type": "string" },
              "orientation": { "type": "string" },
              "mass": { "type": "number" },
              "texture": { "type": "string" }
            },
            "required": ["color", "size", "position", "shape", "material", "orientation", "mass", "texture"]
          },
          "relations": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "object_id": { "type": "integer" },
                "object_name": { "type": "string" },
                "relation_type": { "type": "string" },
                "relation_description": { "type": "string" },
                "relation_confidence": { "type": "number" }
              },
              "required": ["object_id", "object_name", "relation_type", "relation_description", "relation_confidence"]
            }
          },
          "semantic_context": {
            "type": "object",
            "properties": {
              "function": { "type": "string" },
              "actions": {
                "type": "array",
                "items": {
                  "type": "object",
                  "properties": {
                    "action_name": { "type": "string" },
                    "action_description": { "type": "string" }
                  },
                  "required": ["action_name", "action_description"]
                }
              }
            },
            "required": ["function", "actions"]
          }
        },
        "required": ["id", "name", "bounding_box", "center", "attributes", "relations", "semantic_context"]
      }
    }
  },
  "required": ["image_name", "objects"]
}`

// Prompt builds the per-image instruction, embedding the reply schema.
func Prompt(imageName string) string {
	return fmt.Sprintf(`Analyze the attached image %q and describe every distinct physical object you can identify.

Reply with a single JSON document that conforms to this JSON Schema:

%s

Rules:
- Number object ids from 1 in reading order; ids must be unique within the scene.
- bounding_box and center use coordinates normalized to [0,1] with the origin at the top-left corner; x_min < x_max and y_min < y_max.
- Every attribute key is required; estimate mass in kilograms as a number.
- relations reference other objects by id and name; relation_confidence is in [0,1].
- Set image_name to %q.
- Reply with JSON only.`, imageName, sceneSchema, imageName)
}
