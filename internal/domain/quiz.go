package domain

// Quiz is an ephemeral, ordered selection of flashcards assembled at
// generation or read time. It is never stored as a row itself; persisted
// state lives in QuizRecord rows grouped by quiz id.
type Quiz struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Categories       []string          `json:"categories"`
	Flashcards       []Flashcard       `json:"flashcards"`
	DifficultyLevels []DifficultyLevel `json:"difficulty_levels"`
}

// MinQuizSize is the smallest number of flashcards a quiz may contain.
const MinQuizSize = 3
