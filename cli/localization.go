package cli

// TranslateKey identifies one user-visible string.
type TranslateKey int

const (
	ActiveLessonLabel TranslateKey = iota
	ActiveFeedbackLabel
	ShowLessons
	SubmitAssignment
	ViewGrades
	GiveFeedback
	Dashboard
	DeleteCredentials
	DeleteCredentialsConfirmation
	ConfirmationYes
	ConfirmationNo
	DeleteCredentialsDone
	AddQuestionsToLesson
	InsertStudentAbsence
	Name
	IsPresent
	Absent
	Present
	AddLesson
	HowToGrade
	MarkQuestion
	QuestionsToReview
	TodoList
	NothingTodo
	InvalidInput
	LessonNotFound
	FeedbackNotOpen
	InsertEmail
	InsertPassword
	InsertCourseID
	InsertRole
	InsertName
	InsertRegisterNumber
	SaveCredentialsQuestion
	LoginFailed
	LoggingIn
	Exit
	SelectOption
	FeedbackTextPrompt
	MissingElementsPrompt
	GradePrompt
	GPTQuestion
	ConfirmSend
	OperationCancelled
	Sent
	UpdateRecommendedMsg
	IncompatibleVersionMsg
)

// Localization resolves display strings for one language. Italian is
// the default; unknown keys render as their placeholder.
type Localization struct {
	language string
	dict     map[TranslateKey]string
}

func NewLocalization(language string) *Localization {
	l := &Localization{language: language}
	switch language {
	case "en":
		l.dict = englishDictionary()
	default:
		l.dict = italianDictionary()
	}
	return l
}

func (l *Localization) Text(key TranslateKey) string {
	if s, ok := l.dict[key]; ok {
		return s
	}
	return "{missing translation}"
}

func englishDictionary() map[TranslateKey]string {
	return map[TranslateKey]string{
		ActiveLessonLabel:             " (ACTIVE) ",
		ActiveFeedbackLabel:           " (ACTIVE) ",
		ShowLessons:                   "Show Lessons",
		SubmitAssignment:              "Submit Assignment",
		ViewGrades:                    "View Grades",
		GiveFeedback:                  "Give Feedback",
		Dashboard:                     "Dashboard",
		DeleteCredentials:             "Delete Credentials",
		DeleteCredentialsConfirmation: "Are you sure you want to delete the credentials? (y/n): ",
		ConfirmationYes:               "y",
		ConfirmationNo:                "n",
		DeleteCredentialsDone:         "Credentials deleted.",
		AddQuestionsToLesson:          "Add questions to lesson",
		InsertStudentAbsence:          "Insert the student's absence register number",
		Name:                          "Name",
		IsPresent:                     "Is present",
		Absent:                        "Absent",
		Present:                       "Present",
		AddLesson:                     "Add Lesson",
		HowToGrade:                    "How do grade?",
		MarkQuestion:                  "Mark question",
		QuestionsToReview:             "Review corrected answers",
		TodoList:                      " ToDo list ",
		NothingTodo:                   "Nothing left to do.",
		InvalidInput:                  "Invalid input. Please try again.",
		LessonNotFound:                "Lesson not found. Please try again.",
		FeedbackNotOpen:               "Feedback is not open yet. Come back at: %s.",
		InsertEmail:                   "Email: ",
		InsertPassword:                "Password: ",
		InsertCourseID:                "Course id (or enrollment code): ",
		InsertRole:                    "Role (1 student, 2 teacher): ",
		InsertName:                    "Full name: ",
		InsertRegisterNumber:          "Register number: ",
		SaveCredentialsQuestion:       "Save credentials for next time? (y/n): ",
		LoginFailed:                   "Login failed.",
		LoggingIn:                     "Logging in",
		Exit:                          "Exit",
		SelectOption:                  "Select an option: ",
		FeedbackTextPrompt:            "Feedback: ",
		MissingElementsPrompt:         "Missing elements: ",
		GradePrompt:                   "Grade (4-8): ",
		GPTQuestion:                   "Did you use GPT? (y/n): ",
		ConfirmSend:                   "Send? (y/n): ",
		OperationCancelled:            "Operation cancelled.",
		Sent:                          "Sent.",
		UpdateRecommendedMsg:          "A new version is available, please update.",
		IncompatibleVersionMsg:        "This version is no longer supported, update required.",
	}
}

func italianDictionary() map[TranslateKey]string {
	return map[TranslateKey]string{
		ActiveLessonLabel:             " (ATTIVO) ",
		ActiveFeedbackLabel:           " (ATTIVO) ",
		ShowLessons:                   "Mostra lezioni",
		SubmitAssignment:              "Rispondi alle domande",
		ViewGrades:                    "Visualizza voti",
		GiveFeedback:                  "Dai feedback",
		Dashboard:                     "Dashboard voti",
		DeleteCredentials:             "Cancella credenziali",
		DeleteCredentialsConfirmation: "Sei sicuro di voler cancellare le credenziali? (s/n): ",
		ConfirmationYes:               "s",
		ConfirmationNo:                "n",
		DeleteCredentialsDone:         "Credenziali cancellate.",
		AddQuestionsToLesson:          "Aggiungi domande alla lezione",
		InsertStudentAbsence:          "Inserisci il numero del registro dello studente assente",
		Name:                          "Nome",
		IsPresent:                     "Presenza",
		Absent:                        "Assente",
		Present:                       "Presente",
		AddLesson:                     "Aggiungi lezione",
		HowToGrade:                    "Come valutare?",
		MarkQuestion:                  "Correggi domanda",
		QuestionsToReview:             "Revisiona domande corrette",
		TodoList:                      " Cose da fare ",
		NothingTodo:                   "Nessun compito da svolgere.",
		InvalidInput:                  "Input non valido. Riprova.",
		LessonNotFound:                "Lezione non trovata. Riprova.",
		FeedbackNotOpen:               "Non e' ancora il momento di dare il feedback. Torna alle ore: %s.",
		InsertEmail:                   "Email: ",
		InsertPassword:                "Password: ",
		InsertCourseID:                "Id corso (o codice di iscrizione): ",
		InsertRole:                    "Ruolo (1 studente, 2 docente): ",
		InsertName:                    "Nome e cognome: ",
		InsertRegisterNumber:          "Numero di registro: ",
		SaveCredentialsQuestion:       "Salvare le credenziali per la prossima volta? (s/n): ",
		LoginFailed:                   "Accesso non riuscito.",
		LoggingIn:                     "Accesso in corso",
		Exit:                          "Esci",
		SelectOption:                  "Seleziona un'opzione: ",
		FeedbackTextPrompt:            "Feedback: ",
		MissingElementsPrompt:         "Elementi mancanti: ",
		GradePrompt:                   "Voto (4-8): ",
		GPTQuestion:                   "Hai usato GPT? (s/n): ",
		ConfirmSend:                   "Inviare? (s/n): ",
		OperationCancelled:            "Operazione annullata.",
		Sent:                          "Inviato.",
		UpdateRecommendedMsg:          "E' disponibile una nuova versione, aggiorna il programma.",
		IncompatibleVersionMsg:        "Questa versione non e' piu' supportata, aggiornamento necessario.",
	}
}
