package domain

// Board is the aggregate document: the unit of storage, update and
// broadcast. Nested entities live and die with their parent board.
type Board struct {
	Id          string     `json:"_id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	IsStarred   bool       `json:"isStarred"`
	ArchivedAt  int64      `json:"archivedAt,omitempty"`
	CreatedAt   int64      `json:"createdAt,omitempty"`
	Speed       float64    `json:"speed,omitempty"`
	Owner       *MiniUser  `json:"owner,omitempty"`
	Style       Style      `json:"style,omitempty"`
	Labels      []Label    `json:"labels"`
	Members     []Member   `json:"members"`
	Groups      []Group    `json:"groups"`
	Activities  []Activity `json:"activities"`
	Msgs        []Msg      `json:"msgs"`
}

// Style is a free-form appearance bag (background color/image, cover size).
type Style map[string]any

type Label struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	Color      string `json:"color"`
	ColorName  string `json:"colorName,omitempty"`
	IsEditable bool   `json:"isEditable,omitempty"`
}

type Member struct {
	Id       string `json:"id"`
	FullName string `json:"fullname"`
	ImgUrl   string `json:"imgUrl,omitempty"`
	Color    string `json:"color,omitempty"`
}

type Group struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	ArchivedAt int64  `json:"archivedAt,omitempty"`
	Style      Style  `json:"style,omitempty"`
	Tasks      []Task `json:"tasks"`
}

type Task struct {
	Id          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Labels      []Label     `json:"labels,omitempty"`
	Members     []Member    `json:"members,omitempty"`
	Checklists  []Checklist `json:"checklists,omitempty"`
	Comments    []Comment   `json:"comments,omitempty"`
	Style       Style       `json:"style,omitempty"`
	DueDate     string      `json:"dueDate,omitempty"`
}

type Checklist struct {
	Id    string          `json:"id"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
}

type ChecklistItem struct {
	Id      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type Comment struct {
	Id        string   `json:"id"`
	Txt       string   `json:"txt"`
	CreatedAt int64    `json:"createdAt"`
	By        MiniUser `json:"by"`
}

// Activity is one entry of the board's append-only action log.
type Activity struct {
	Id            string         `json:"id"`
	Title         string         `json:"title"`
	Type          string         `json:"type,omitempty"`
	CreatedAt     int64          `json:"createdAt"`
	ByMember      Member         `json:"byMember"`
	Group         *Group         `json:"group,omitempty"`
	Task          *Task          `json:"task,omitempty"`
	Checklist     *Checklist     `json:"checklist,omitempty"`
	ChecklistItem *ChecklistItem `json:"item,omitempty"`
}

type Msg struct {
	Id   string   `json:"id"`
	Txt  string   `json:"txt"`
	Html string   `json:"html,omitempty"`
	By   MiniUser `json:"by"`
}

// OwnerId returns the owning user id, empty for ownerless boards.
func (b *Board) OwnerId() string {
	if b.Owner == nil {
		return ""
	}
	return b.Owner.Id
}
