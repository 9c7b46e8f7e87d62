package model

// Shapes mirror the HappyMeal server responses. The server owns every
// record; the client only decodes, defaults, and renders.

type Food struct {
	FoodID      int64   `json:"foodId"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	ServingSize float64 `json:"servingSize"`
	Unit        string  `json:"unit"`
	Calories    float64 `json:"calories"`
	Carbs       float64 `json:"carbs"`
	Sugar       float64 `json:"sugar"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	ImgURL      string  `json:"imgUrl"`
	FoodCode    string  `json:"foodCode"`
}

const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

type FoodRequest struct {
	FoodRequestID int64   `json:"foodRequestId"`
	UserID        int64   `json:"userId"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	ServingSize   float64 `json:"servingSize"`
	Unit          string  `json:"unit"`
	Calories      float64 `json:"calories"`
	Carbs         float64 `json:"carbs"`
	Sugar         float64 `json:"sugar"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	IsRegistered  string  `json:"isRegistered"`
}

const (
	MealBreakfast = "BREAKFAST"
	MealLunch     = "LUNCH"
	MealDinner    = "DINNER"
	MealSnack     = "SNACK"
)

// MealLog carries the raw quantity plus the referenced food's per-100g
// nutrients. Displayed nutrition is always recomputed from those two,
// never read back from a stored total (see nutrition.Scale).
type MealLog struct {
	LogID    int64   `json:"logId"`
	FoodID   int64   `json:"foodId"`
	FoodName string  `json:"foodName"`
	MealType string  `json:"mealType"`
	Quantity float64 `json:"quantity"`
	MealDate string  `json:"mealDate"`
	ImgURL   string  `json:"imgUrl"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Sugar    float64 `json:"sugar"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

type MealStats struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalSugar    float64 `json:"totalSugar"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalFat      float64 `json:"totalFat"`
}

// DailyStats is one slot of the weekly fan-out; a day whose stats call
// failed keeps zero totals so the other days still render.
type DailyStats struct {
	Date string `json:"date"`
	MealStats
	Missing bool `json:"-"`
}

const (
	BlockText  = "text"
	BlockImage = "image"
)

type Block struct {
	OrderIndex   int    `json:"orderIndex"`
	BlockType    string `json:"blockType"`
	ContentText  string `json:"contentText,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ImageCaption string `json:"imageCaption,omitempty"`
}

type Board struct {
	BoardID       int64   `json:"boardId"`
	UserID        int64   `json:"userId"`
	Nickname      string  `json:"nickname"`
	CategoryID    int     `json:"categoryId"`
	Title         string  `json:"title"`
	Views         int     `json:"views"`
	LikesCount    int     `json:"likesCount"`
	CommentsCount int     `json:"commentsCount"`
	Blocks        []Block `json:"blocks,omitempty"`
	CreateAt      string  `json:"createAt"`
}

type Comment struct {
	CommentID       int64  `json:"commentId"`
	BoardID         int64  `json:"boardId"`
	UserID          int64  `json:"userId"`
	Nickname        string `json:"nickname"`
	Content         string `json:"content"`
	ParentCommentID *int64 `json:"parentCommentId"`
	CreateAt        string `json:"createAt"`
}

type LikeStatus struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	UserID   int64  `json:"userId"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

type Profile struct {
	UserID          int64  `json:"userId"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	Role            string `json:"role"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Page is the server's common paging envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}
