package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
)

const (
	ExportFormatVersion  = "1.0"
	exportDateTimeLayout = "2006-01-02 15:04:05"
	exportFileDateLayout = "20060102"
	encryptedSuffix      = ".enc"
)

var errUnrepresentableDate = errors.New("date outside year range 0000-9999")

type ExportRecordReader interface {
	QueryDiet(ctx context.Context, from time.Time, to time.Time) ([]models.DietRecord, error)
	QueryExercise(ctx context.Context, from time.Time, to time.Time) ([]models.ExerciseRecord, error)
	QuerySleep(ctx context.Context, from time.Time, to time.Time) ([]models.SleepRecord, error)
}

type ReportRenderer interface {
	Render(document ReportDocument) ([]byte, error)
}

type PayloadEncrypter interface {
	Encrypt(plaintext []byte, password string) ([]byte, error)
}

type ExportRecorder interface {
	RecordExport(at time.Time) error
}

type ExportDietEntry struct {
	ID         uint    `json:"id"`
	FoodName   string  `json:"foodName"`
	MealType   string  `json:"mealType"`
	IntakeTime string  `json:"intakeTime"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	Note       string  `json:"note"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type ExportExerciseEntry struct {
	ID              uint    `json:"id"`
	ExerciseType    string  `json:"exerciseType"`
	CustomTypeName  string  `json:"customTypeName"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int64   `json:"durationMinutes"`
	Intensity       string  `json:"intensity"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
	Distance        float64 `json:"distance"`
	Steps           int     `json:"steps"`
	Note            string  `json:"note"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type ExportSleepEntry struct {
	ID                  uint    `json:"id"`
	SleepTime           string  `json:"sleepTime"`
	WakeTime            string  `json:"wakeTime"`
	DurationMinutes     int64   `json:"durationMinutes"`
	DurationHours       float64 `json:"durationHours"`
	SleepQuality        string  `json:"sleepQuality"`
	WakeUpCount         int     `json:"wakeUpCount"`
	SleepLatencyMinutes int     `json:"sleepLatencyMinutes"`
	HasDream            bool    `json:"hasDream"`
	DreamDescription    string  `json:"dreamDescription"`
	Note                string  `json:"note"`
	RecordDate          string  `json:"recordDate"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

type ExportMetadata struct {
	ExportTime string `json:"exportTime"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Version    string `json:"version"`
}

type ExportDocument struct {
	DietRecords     []ExportDietEntry     `json:"dietRecords"`
	ExerciseRecords []ExportExerciseEntry `json:"exerciseRecords"`
	SleepRecords    []ExportSleepEntry    `json:"sleepRecords"`
	Metadata        ExportMetadata        `json:"metadata"`
}

type ExportFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"-"`
	Size      int64     `json:"size"`
	Encrypted bool      `json:"encrypted"`
	CreatedAt time.Time `json:"created_at"`
}

type exportRecords struct {
	diet     []models.DietRecord
	exercise []models.ExerciseRecord
	sleep    []models.SleepRecord
}

// ExportService pulls a range from the record store and turns it into a JSON
// export or a rendered, optionally encrypted, report file.
type ExportService struct {
	records   ExportRecordReader
	assembler *ReportAssembler
	renderer  ReportRenderer
	encrypter PayloadEncrypter
	recorder  ExportRecorder
	dir       string
	location  *time.Location
	now       func() time.Time
}

func NewExportService(records ExportRecordReader, renderer ReportRenderer, encrypter PayloadEncrypter, recorder ExportRecorder, dir string, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		records:   records,
		assembler: NewReportAssembler(location),
		renderer:  renderer,
		encrypter: encrypter,
		recorder:  recorder,
		dir:       dir,
		location:  location,
		now:       time.Now,
	}
}

func (service *ExportService) Location() *time.Location {
	return service.location
}

func (service *ExportService) load(ctx context.Context, dateRange DateRange) (exportRecords, error) {
	var loaded exportRecords
	var err error

	if loaded.diet, err = service.records.QueryDiet(ctx, dateRange.From, dateRange.To); err != nil {
		return exportRecords{}, newExportError(KindStorageFailure, "query diet records", err)
	}
	if loaded.exercise, err = service.records.QueryExercise(ctx, dateRange.From, dateRange.To); err != nil {
		return exportRecords{}, newExportError(KindStorageFailure, "query exercise records", err)
	}
	if loaded.sleep, err = service.records.QuerySleep(ctx, dateRange.From, dateRange.To); err != nil {
		return exportRecords{}, newExportError(KindStorageFailure, "query sleep records", err)
	}
	return loaded, nil
}

// ExportJSON returns the serialized export. Any encoding failure yields an
// empty string and a serialization error, never partial text.
func (service *ExportService) ExportJSON(ctx context.Context, dateRange DateRange) (string, error) {
	loaded, err := service.load(ctx, dateRange)
	if err != nil {
		return "", err
	}

	document, err := service.BuildExportDocument(loaded.diet, loaded.exercise, loaded.sleep, dateRange)
	if err != nil {
		return "", newExportError(KindSerializationFailure, "build json export", err)
	}

	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", newExportError(KindSerializationFailure, "encode json export", err)
	}
	return string(encoded), nil
}

// SaveJSON writes the JSON export under the export directory and records the
// export time.
func (service *ExportService) SaveJSON(ctx context.Context, dateRange DateRange) (ExportFile, error) {
	text, err := service.ExportJSON(ctx, dateRange)
	if err != nil {
		return ExportFile{}, err
	}

	now := service.now()
	name := now.In(service.location).Format(exportFileDateLayout) + "_health-export.json"
	return service.persist(name, []byte(text), false, now)
}

// ExportReport assembles, renders and optionally encrypts a report, then
// moves it into place. On failure the destination is left untouched.
func (service *ExportService) ExportReport(ctx context.Context, dateRange DateRange, password string) (ExportFile, error) {
	loaded, err := service.load(ctx, dateRange)
	if err != nil {
		return ExportFile{}, err
	}

	document := service.assembler.Assemble(loaded.diet, loaded.exercise, loaded.sleep, dateRange.From, dateRange.To, dateRange.Period)
	rendered, err := service.renderer.Render(document)
	if err != nil {
		return ExportFile{}, newExportError(KindSerializationFailure, "render report", err)
	}

	encrypted := password != ""
	if encrypted {
		if service.encrypter == nil {
			return ExportFile{}, newExportError(KindStorageFailure, "encrypt report", errors.New("no encrypter configured"))
		}
		rendered, err = service.encrypter.Encrypt(rendered, password)
		if err != nil {
			return ExportFile{}, newExportError(KindOf(err), "encrypt report", err)
		}
	}

	now := service.now()
	return service.persist(ReportFileName(now.In(service.location), dateRange.Period, encrypted), rendered, encrypted, now)
}

// persist stages content next to its final name, records the export time and
// only then moves the file into place. A failed record leaves any earlier file
// with the same name untouched.
func (service *ExportService) persist(name string, content []byte, encrypted bool, now time.Time) (ExportFile, error) {
	staged, err := stageFile(service.dir, name, content)
	if err != nil {
		return ExportFile{}, newExportError(KindStorageFailure, "write "+name, err)
	}
	defer staged.discard()

	if service.recorder != nil {
		if err := service.recorder.RecordExport(now); err != nil {
			return ExportFile{}, newExportError(KindStorageFailure, "record export time", err)
		}
	}

	path, err := staged.commit()
	if err != nil {
		return ExportFile{}, newExportError(KindStorageFailure, "write "+name, err)
	}

	return ExportFile{
		Name:      name,
		Path:      path,
		Size:      int64(len(content)),
		Encrypted: encrypted,
		CreatedAt: now,
	}, nil
}

// ReportFileName is <yyyyMMdd>_health-report_<period>.pdf, with .enc appended
// for encrypted payloads.
func ReportFileName(day time.Time, period string, encrypted bool) string {
	name := fmt.Sprintf("%s_health-report_%s.pdf", day.Format(exportFileDateLayout), fileSafePeriod(period))
	if encrypted {
		name += encryptedSuffix
	}
	return name
}

func fileSafePeriod(period string) string {
	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" {
		return PeriodCustom
	}
	for _, char := range period {
		if (char < 'a' || char > 'z') && (char < '0' || char > '9') && char != '-' {
			return PeriodCustom
		}
	}
	return period
}

// WriteFileAtomic writes into a temporary file in dir and renames it over the
// final name, so readers never observe a partial file.
func WriteFileAtomic(dir string, name string, content []byte) (string, error) {
	staged, err := stageFile(dir, name, content)
	if err != nil {
		return "", err
	}
	defer staged.discard()
	return staged.commit()
}

// stagedFile is a fully written temporary file waiting to be renamed over its
// final path.
type stagedFile struct {
	tempPath  string
	finalPath string
	committed bool
}

func stageFile(dir string, name string, content []byte) (*stagedFile, error) {
	if strings.ContainsAny(name, `/\`) || name == "" || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid export file name %q", name)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	staged := &stagedFile{tempPath: temp.Name(), finalPath: filepath.Join(dir, name)}

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		staged.discard()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		staged.discard()
		return nil, fmt.Errorf("sync temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		staged.discard()
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	return staged, nil
}

func (staged *stagedFile) commit() (string, error) {
	if err := os.Rename(staged.tempPath, staged.finalPath); err != nil {
		return "", fmt.Errorf("move export into place: %w", err)
	}
	staged.committed = true
	return staged.finalPath, nil
}

// discard removes the temporary file unless it was committed.
func (staged *stagedFile) discard() {
	if !staged.committed {
		_ = os.Remove(staged.tempPath)
	}
}

func (service *ExportService) BuildExportDocument(diet []models.DietRecord, exercise []models.ExerciseRecord, sleep []models.SleepRecord, dateRange DateRange) (ExportDocument, error) {
	formatter := exportFormatter{location: service.location}
	document := ExportDocument{
		DietRecords:     make([]ExportDietEntry, 0, len(diet)),
		ExerciseRecords: make([]ExportExerciseEntry, 0, len(exercise)),
		SleepRecords:    make([]ExportSleepEntry, 0, len(sleep)),
		Metadata: ExportMetadata{
			ExportTime: formatter.instant(service.now()),
			StartDate:  formatter.instant(dateRange.From),
			EndDate:    formatter.instant(dateRange.To),
			Version:    ExportFormatVersion,
		},
	}

	for _, record := range diet {
		document.DietRecords = append(document.DietRecords, ExportDietEntry{
			ID:         record.ID,
			FoodName:   record.FoodName,
			MealType:   string(record.MealType),
			IntakeTime: formatter.pointer(record.IntakeTime),
			Calories:   record.Calories,
			Protein:    record.Protein,
			Carbs:      record.Carbs,
			Fat:        record.Fat,
			Amount:     record.Amount,
			Unit:       record.Unit,
			Note:       record.Note,
			CreatedAt:  formatter.instant(record.CreatedAt),
			UpdatedAt:  formatter.instant(record.UpdatedAt),
		})
	}

	for _, record := range exercise {
		document.ExerciseRecords = append(document.ExerciseRecords, ExportExerciseEntry{
			ID:              record.ID,
			ExerciseType:    string(record.ExerciseType),
			CustomTypeName:  record.CustomTypeName,
			StartTime:       formatter.pointer(record.StartTime),
			EndTime:         formatter.pointer(record.EndTime),
			DurationMinutes: record.Duration(),
			Intensity:       string(record.Intensity),
			CaloriesBurned:  record.CaloriesBurned,
			Distance:        record.Distance,
			Steps:           record.Steps,
			Note:            record.Note,
			CreatedAt:       formatter.instant(record.CreatedAt),
			UpdatedAt:       formatter.instant(record.UpdatedAt),
		})
	}

	for _, record := range sleep {
		document.SleepRecords = append(document.SleepRecords, ExportSleepEntry{
			ID:                  record.ID,
			SleepTime:           formatter.pointer(record.SleepTime),
			WakeTime:            formatter.pointer(record.WakeTime),
			DurationMinutes:     record.Duration(),
			DurationHours:       record.DurationHours(),
			SleepQuality:        string(record.Quality),
			WakeUpCount:         record.WakeUpCount,
			SleepLatencyMinutes: record.SleepLatencyMinutes,
			HasDream:            record.HasDream,
			DreamDescription:    record.DreamDescription,
			Note:                record.Note,
			RecordDate:          formatter.instant(record.RecordDate),
			CreatedAt:           formatter.instant(record.CreatedAt),
			UpdatedAt:           formatter.instant(record.UpdatedAt),
		})
	}

	if formatter.err != nil {
		return ExportDocument{}, formatter.err
	}
	return document, nil
}

// exportFormatter renders timestamps and keeps the first unrepresentable one.
type exportFormatter struct {
	location *time.Location
	err      error
}

func (formatter *exportFormatter) pointer(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatter.instant(*value)
}

func (formatter *exportFormatter) instant(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	localized := value.In(formatter.location)
	if year := localized.Year(); year < 0 || year > 9999 {
		if formatter.err == nil {
			formatter.err = fmt.Errorf("%w: %s", errUnrepresentableDate, value.UTC().String())
		}
		return ""
	}
	return localized.Format(exportDateTimeLayout)
}
