package hubspot

// ContactProperties — свойства контакта в HubSpot CRM.
type ContactProperties struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
}

// Запрос на создание или обновление контакта
type upsertContactRequest struct {
	Properties ContactProperties `json:"properties"`
}

// Ответ HubSpot на операции с контактом
type contactObject struct {
	ID         string            `json:"id"`
	Properties ContactProperties `json:"properties"`
}

// ContactSyncResult — итог синхронизации контакта с CRM.
// Action принимает значения "created" или "updated".
type ContactSyncResult struct {
	HubspotID string
	Action    string
}

// NoteProperties — свойства заметки, привязываемой к контакту.
type NoteProperties struct {
	HsNoteBody  string `json:"hs_note_body"`
	HsTimestamp string `json:"hs_timestamp"`
}

type createNoteRequest struct {
	Properties NoteProperties `json:"properties"`
}

type noteObject struct {
	ID string `json:"id"`
}

// DealProperties — свойства сделки для заявок на пробный период.
type DealProperties struct {
	Dealname  string `json:"dealname"`
	Dealstage string `json:"dealstage"`
	Pipeline  string `json:"pipeline"`
	Amount    string `json:"amount"`
}

type createDealRequest struct {
	Properties DealProperties `json:"properties"`
}

type dealObject struct {
	ID string `json:"id"`
}
