package dispatch

// Worker-facing queue payloads. The two job categories have explicitly
// different shapes, one per queue, so each worker pool knows exactly what
// it consumes.

// RunJob is a free-form run: execute the code once against a single
// input. Sent on the single-execution queue.
type RunJob struct {
	Language   string `json:"language"`
	Code       string `json:"code"`
	FolderName string `json:"folder_name"`
	Input      string `json:"input"`
	TimeoutMs  int    `json:"timeout"`
}

// InputCode is the submitted program of a question-bound run.
type InputCode struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// RefSolution is the question's canonical solution the worker diffs the
// submitted program against.
type RefSolution struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// QuestionRunJob is a question-bound run: execute the code against a list
// of test inputs and compare with the reference solution. Sent on the
// multi-execution queue.
type QuestionRunJob struct {
	InputCode  InputCode   `json:"input_code"`
	FolderName string      `json:"folder_name"`
	TestInputs []string    `json:"test_inputs"`
	TimeoutMs  int         `json:"timeout"`
	Solution   RefSolution `json:"solution"`
}

// The four languages the execution workers support.
var supportedLanguages = []string{"cpp", "java", "py", "js"}

func isSupportedLanguage(lang string) bool {
	for _, l := range supportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

const defaultTimeoutMs = 15000
