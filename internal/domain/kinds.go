package domain

// ProgramKind tells the shared catalog apart from profile-owned programs.
// Days and logs carry the kind of the program they belong to.
type ProgramKind string

const (
	ProgramDefault ProgramKind = "default"
	ProgramCustom  ProgramKind = "custom"
)

// ProgramKinds lists the kinds in query-switch precedence order.
var ProgramKinds = []ProgramKind{ProgramDefault, ProgramCustom}

func (k ProgramKind) Valid() bool {
	return k == ProgramDefault || k == ProgramCustom
}

func (k ProgramKind) String() string { return string(k) }

// MediaKind distinguishes photos from videos.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

var MediaKinds = []MediaKind{MediaPhoto, MediaVideo}

func (k MediaKind) Valid() bool {
	return k == MediaPhoto || k == MediaVideo
}

func (k MediaKind) String() string { return string(k) }

// MediaVisibility separates catalog media (public, no owner) from media a
// profile uploaded itself.
type MediaVisibility string

const (
	MediaPublic   MediaVisibility = "public"
	MediaUploaded MediaVisibility = "uploaded"
)

var MediaVisibilities = []MediaVisibility{MediaPublic, MediaUploaded}

func (v MediaVisibility) String() string { return string(v) }

// Meal is the slot a food log belongs to.
type Meal string

const (
	MealBreakfast Meal = "BREAKFAST"
	MealLunch     Meal = "LUNCH"
	MealDinner    Meal = "DINNER"
	MealSnack     Meal = "SNACK"
)

var Meals = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnack}

func (m Meal) Valid() bool {
	for _, meal := range Meals {
		if m == meal {
			return true
		}
	}
	return false
}
