package llm

// ChatModels lists the model identifiers accepted by the completion endpoint
// for text chat requests.
var ChatModels = []string{
	"Meta-Llama-3.1-405B-Instruct",
	"Meta-Llama-3.1-70B-Instruct",
	"Meta-Llama-3.1-8B-Instruct",
	"Meta-Llama-3.2-1B-Instruct",
	"Meta-Llama-3.2-3B-Instruct",
	"Meta-Llama-Guard-3-8B",
	"Meta-Llama-3.3-70B-Instruct",
	"QwQ-32B-Preview",
	"Qwen2.5-Coder-32B-Instruct",
	"Qwen2.5-72B-Instruct",
}

// VisionModels lists the model identifiers accepted for image+text requests
var VisionModels = []string{
	"Llama-3.2-11B-Vision-Instruct",
	"Llama-3.2-90B-Vision-Instruct",
}

const (
	DefaultChatModel   = "Meta-Llama-3.2-1B-Instruct"
	DefaultVisionModel = "Llama-3.2-11B-Vision-Instruct"
)

// ValidateChatModel checks model against the chat catalog
func ValidateChatModel(model string) error {
	return validateModel(model, ChatModels)
}

// ValidateVisionModel checks model against the vision catalog
func ValidateVisionModel(model string) error {
	return validateModel(model, VisionModels)
}

func validateModel(model string, available []string) error {
	for _, m := range available {
		if m == model {
			return nil
		}
	}
	return &ModelNotFoundError{Model: model, Available: available}
}
