package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"turf-booking/internal/status"
	"turf-booking/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// The PB* types implement the store interfaces on top of a PocketBase app,
// one type per collection. The allocator paths run inside RunInTransaction;
// SQLite serializes the write transaction and the unique index on
// (turf_id, court, date, slot) turns a racing duplicate insert into a
// conflict instead of a double booking.

type PBTurfStore struct {
	app core.App
}

type PBBookingStore struct {
	app core.App
}

type PBPlayerStore struct {
	app core.App
}

type PBGroupStore struct {
	app core.App
}

type PBPaymentStore struct {
	app core.App
}

func NewPBTurfStore(app core.App) *PBTurfStore       { return &PBTurfStore{app: app} }
func NewPBBookingStore(app core.App) *PBBookingStore { return &PBBookingStore{app: app} }
func NewPBPlayerStore(app core.App) *PBPlayerStore   { return &PBPlayerStore{app: app} }
func NewPBGroupStore(app core.App) *PBGroupStore     { return &PBGroupStore{app: app} }
func NewPBPaymentStore(app core.App) *PBPaymentStore { return &PBPaymentStore{app: app} }

// ---- TurfStore ----

func (s *PBTurfStore) Create(ctx context.Context, t *models.Turf) (*models.Turf, error) {
	collection, err := s.app.FindCollectionByNameOrId("turfs")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	setTurfFields(record, t)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return turfFromRecord(record)
}

func (s *PBTurfStore) FindByID(ctx context.Context, id string) (*models.Turf, error) {
	record, err := s.app.FindRecordById("turfs", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrTurfNotFound
		}
		return nil, err
	}
	return turfFromRecord(record)
}

func (s *PBTurfStore) FindByOwner(ctx context.Context, ownerMobileNo string) ([]*models.Turf, error) {
	records, err := s.app.FindRecordsByFilter(
		"turfs",
		"owner_mobile_no = {:owner}",
		"-created",
		0,
		0,
		dbx.Params{"owner": ownerMobileNo},
	)
	if err != nil {
		return nil, err
	}
	return turfsFromRecords(records)
}

func (s *PBTurfStore) List(ctx context.Context, filter TurfFilter) ([]*models.Turf, error) {
	exp := dbx.HashExp{}
	if filter.Location != "" {
		exp["location"] = filter.Location
	}
	if filter.Category != "" {
		exp["category"] = filter.Category
	}
	if filter.Rating != "" {
		exp["rating"] = filter.Rating
	}

	records := []*core.Record{}
	q := s.app.RecordQuery("turfs")
	if len(exp) > 0 {
		q = q.AndWhere(exp)
	}
	if err := q.All(&records); err != nil {
		return nil, err
	}
	return turfsFromRecords(records)
}

func (s *PBTurfStore) Update(ctx context.Context, t *models.Turf) (*models.Turf, error) {
	record, err := s.app.FindRecordById("turfs", t.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrTurfNotFound
		}
		return nil, err
	}

	setTurfFields(record, t)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return turfFromRecord(record)
}

func (s *PBTurfStore) Delete(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("turfs", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return status.ErrTurfNotFound
		}
		return err
	}
	return s.app.Delete(record)
}

func setTurfFields(record *core.Record, t *models.Turf) {
	record.Set("category", t.Category)
	record.Set("turfname", t.TurfName)
	record.Set("location", t.Location)
	record.Set("description", t.Description)
	record.Set("images", t.Images)
	record.Set("playwithstranger", t.PlayWithStranger)
	record.Set("court", t.Court)
	record.Set("amenties", t.Amenities)
	record.Set("rating", t.Rating)
	record.Set("slots", t.Slots)
	record.Set("discounts", t.Discounts)
	record.Set("owner_mobile_no", t.OwnerMobileNo)
}

// ---- BookingStore ----

func (s *PBBookingStore) Create(ctx context.Context, b *models.Booking, capacity int) (*models.Booking, error) {
	var created *core.Record

	err := s.app.RunInTransaction(func(txApp core.App) error {
		// Exact tuple already claimed?
		_, err := txApp.FindFirstRecordByFilter(
			"bookings",
			"turf_id = {:turf} && court = {:court} && date = {:date} && slot = {:slot}",
			dbx.Params{"turf": b.TurfID, "court": b.Court, "date": b.Date, "slot": b.Slot},
		)
		if err == nil {
			return status.ErrSlotTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		// Capacity across all courts for this turf/date/slot.
		count, err := countForSlot(txApp, b.TurfID, b.Date, b.Slot)
		if err != nil {
			return err
		}
		if count >= capacity {
			return status.ErrCourtsFull
		}

		collection, err := txApp.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}

		record := core.NewRecord(collection)
		setBookingFields(record, b)

		if err := txApp.Save(record); err != nil {
			if isUniqueViolation(err) {
				return status.ErrSlotTaken
			}
			return err
		}

		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bookingFromRecord(created)
}

// setBookingFields copies a booking onto a record. Monetary values go
// through InexactFloat64 because number fields cast their input and a raw
// decimal.Decimal casts to 0.
func setBookingFields(record *core.Record, b *models.Booking) {
	record.Set("user_id", b.UserID)
	record.Set("turf_id", b.TurfID)
	record.Set("turf_name", b.TurfName)
	record.Set("turf_image", b.TurfImage)
	record.Set("location", b.Location)
	record.Set("court", b.Court)
	record.Set("date", b.Date)
	record.Set("slot", b.Slot)
	record.Set("play_with_stranger", b.PlayWithStranger)
	record.Set("members", []models.Member{})
	record.Set("price", b.Price.InexactFloat64())
	if b.PlayWithStranger {
		record.Set("total_members", b.TotalMembers)
		record.Set("remaining_members", b.RemainingMembers)
	}
}

func (s *PBBookingStore) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	record, err := s.app.FindRecordById("bookings", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrBookingNotFound
		}
		return nil, err
	}
	return bookingFromRecord(record)
}

func (s *PBBookingStore) AddMember(ctx context.Context, bookingID string, m models.Member) (*models.Booking, error) {
	var updated *core.Record

	err := s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("bookings", bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return status.ErrBookingNotFound
			}
			return err
		}

		if !record.GetBool("play_with_stranger") {
			return status.ErrNotShared
		}
		if record.GetInt("remaining_members") >= record.GetInt("total_members") {
			return status.ErrMembersFull
		}

		members := []models.Member{}
		if err := record.UnmarshalJSONField("members", &members); err != nil {
			return err
		}
		for _, existing := range members {
			if existing.UserID == m.UserID {
				return status.ErrAlreadyMember
			}
		}

		record.Set("members", append(members, m))
		record.Set("remaining_members", record.GetInt("remaining_members")+1)

		if err := txApp.Save(record); err != nil {
			return err
		}

		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bookingFromRecord(updated)
}

func (s *PBBookingStore) FindByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	records, err := s.app.FindRecordsByFilter(
		"bookings",
		"user_id = {:userId}",
		"-created",
		0,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, err
	}
	return bookingsFromRecords(records)
}

func (s *PBBookingStore) List(ctx context.Context, date string, limit int) ([]*models.Booking, error) {
	records := []*core.Record{}
	q := s.app.RecordQuery("bookings").OrderBy("created DESC").Limit(int64(limit))
	if date != "" {
		q = q.AndWhere(dbx.HashExp{"date": date})
	}
	if err := q.All(&records); err != nil {
		return nil, err
	}
	return bookingsFromRecords(records)
}

func (s *PBBookingStore) ListShared(ctx context.Context) ([]*models.Booking, error) {
	records, err := s.app.FindRecordsByFilter(
		"bookings",
		"play_with_stranger = true",
		"-created",
		0,
		0,
	)
	if err != nil {
		return nil, err
	}
	return bookingsFromRecords(records)
}

func (s *PBBookingStore) CountForSlot(ctx context.Context, turfID, date, slot string) (int, error) {
	return countForSlot(s.app, turfID, date, slot)
}

func countForSlot(app core.App, turfID, date, slot string) (int, error) {
	var count int
	err := app.DB().
		Select("count(*)").
		From("bookings").
		Where(dbx.HashExp{"turf_id": turfID, "date": date, "slot": slot}).
		Row(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ---- PlayerStore ----

func (s *PBPlayerStore) Create(ctx context.Context, p *models.Player) (*models.Player, error) {
	collection, err := s.app.FindCollectionByNameOrId("players")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	setPlayerFields(record, p)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return playerFromRecord(record)
}

func (s *PBPlayerStore) FindByID(ctx context.Context, id string) (*models.Player, error) {
	record, err := s.findRecord(id)
	if err != nil {
		return nil, err
	}
	return playerFromRecord(record)
}

func (s *PBPlayerStore) FindByMobile(ctx context.Context, mobileNo string) (*models.Player, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"players",
		"mobileno = {:mobileno}",
		dbx.Params{"mobileno": mobileNo},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrPlayerNotFound
		}
		return nil, err
	}
	return playerFromRecord(record)
}

func (s *PBPlayerStore) List(ctx context.Context) ([]*models.Player, error) {
	records := []*core.Record{}
	if err := s.app.RecordQuery("players").OrderBy("created DESC").All(&records); err != nil {
		return nil, err
	}

	players := make([]*models.Player, 0, len(records))
	for _, r := range records {
		p, err := playerFromRecord(r)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *PBPlayerStore) Update(ctx context.Context, p *models.Player) (*models.Player, error) {
	record, err := s.findRecord(p.ID)
	if err != nil {
		return nil, err
	}

	setPlayerFields(record, p)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return playerFromRecord(record)
}

func (s *PBPlayerStore) Delete(ctx context.Context, id string) error {
	record, err := s.findRecord(id)
	if err != nil {
		return err
	}
	return s.app.Delete(record)
}

func (s *PBPlayerStore) SetProfile(ctx context.Context, playerID, profileURL string) error {
	record, err := s.findRecord(playerID)
	if err != nil {
		return err
	}
	record.Set("profile", profileURL)
	return s.app.Save(record)
}

func (s *PBPlayerStore) ToggleFavourite(ctx context.Context, playerID, turfID string) ([]string, error) {
	var favs []string

	err := s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("players", playerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return status.ErrPlayerNotFound
			}
			return err
		}

		current := []string{}
		_ = record.UnmarshalJSONField("fav_turfs", &current)

		next := make([]string, 0, len(current)+1)
		removed := false
		for _, id := range current {
			if id == turfID {
				removed = true
				continue
			}
			next = append(next, id)
		}
		if !removed {
			next = append(next, turfID)
		}

		record.Set("fav_turfs", next)
		if err := txApp.Save(record); err != nil {
			return err
		}

		favs = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return favs, nil
}

func (s *PBPlayerStore) SetOTPOrder(ctx context.Context, playerID, orderHash string) error {
	record, err := s.findRecord(playerID)
	if err != nil {
		return err
	}
	record.Set("otp_order_id", orderHash)
	return s.app.Save(record)
}

func (s *PBPlayerStore) MarkVerified(ctx context.Context, playerID string) error {
	record, err := s.findRecord(playerID)
	if err != nil {
		return err
	}
	record.Set("is_verified", true)
	record.Set("otp_order_id", "")
	return s.app.Save(record)
}

func (s *PBPlayerStore) findRecord(id string) (*core.Record, error) {
	record, err := s.app.FindRecordById("players", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrPlayerNotFound
		}
		return nil, err
	}
	return record, nil
}

func setPlayerFields(record *core.Record, p *models.Player) {
	record.Set("firstname", p.FirstName)
	record.Set("lastname", p.LastName)
	record.Set("profile", p.Profile)
	record.Set("mobileno", p.MobileNo)
	record.Set("intrestedsports", p.InterestedSport)
	record.Set("level", p.Level)
	record.Set("age", p.Age)
	record.Set("is_verified", p.IsVerified)
	record.Set("location", p.Location)
	record.Set("fav_turfs", p.FavTurfs)
}

// ---- GroupStore ----

func (s *PBGroupStore) Create(ctx context.Context, g *models.CommunityGroup) (*models.CommunityGroup, error) {
	collection, err := s.app.FindCollectionByNameOrId("community_groups")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	setGroupFields(record, g)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return groupFromRecord(record), nil
}

func (s *PBGroupStore) FindByID(ctx context.Context, id string) (*models.CommunityGroup, error) {
	record, err := s.findRecord(id)
	if err != nil {
		return nil, err
	}
	return groupFromRecord(record), nil
}

func (s *PBGroupStore) List(ctx context.Context) ([]*models.CommunityGroup, error) {
	records := []*core.Record{}
	if err := s.app.RecordQuery("community_groups").OrderBy("created DESC").All(&records); err != nil {
		return nil, err
	}

	groups := make([]*models.CommunityGroup, 0, len(records))
	for _, r := range records {
		groups = append(groups, groupFromRecord(r))
	}
	return groups, nil
}

func (s *PBGroupStore) Update(ctx context.Context, g *models.CommunityGroup) (*models.CommunityGroup, error) {
	record, err := s.findRecord(g.ID)
	if err != nil {
		return nil, err
	}

	setGroupFields(record, g)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}
	return groupFromRecord(record), nil
}

func (s *PBGroupStore) Delete(ctx context.Context, id string) error {
	record, err := s.findRecord(id)
	if err != nil {
		return err
	}
	return s.app.Delete(record)
}

func (s *PBGroupStore) findRecord(id string) (*core.Record, error) {
	record, err := s.app.FindRecordById("community_groups", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrGroupNotFound
		}
		return nil, err
	}
	return record, nil
}

func setGroupFields(record *core.Record, g *models.CommunityGroup) {
	record.Set("title", g.Title)
	record.Set("subtitle", g.Subtitle)
	record.Set("profile_image", g.ProfileImage)
	record.Set("group_link", g.GroupLink)
}

func groupFromRecord(r *core.Record) *models.CommunityGroup {
	return &models.CommunityGroup{
		ID:           r.Id,
		Title:        r.GetString("title"),
		Subtitle:     r.GetString("subtitle"),
		ProfileImage: r.GetString("profile_image"),
		GroupLink:    r.GetString("group_link"),
	}
}

// ---- PaymentStore ----

func (s *PBPaymentStore) SavePayment(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	collection, err := s.app.FindCollectionByNameOrId("payments")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	setPaymentFields(record, p)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}

	p.ID = record.Id
	p.Created = record.GetDateTime("created").Time()
	return p, nil
}

func (s *PBPaymentStore) SaveTurfPayment(ctx context.Context, p *models.TurfPayment) (*models.TurfPayment, error) {
	collection, err := s.app.FindCollectionByNameOrId("turf_payments")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	setTurfPaymentFields(record, p)

	if err := s.app.Save(record); err != nil {
		return nil, err
	}

	p.ID = record.Id
	p.Created = record.GetDateTime("created").Time()
	return p, nil
}

func setPaymentFields(record *core.Record, p *models.Payment) {
	record.Set("user_id", p.UserID)
	record.Set("amount", p.Amount.InexactFloat64())
	record.Set("payment_id", p.PaymentID)
	record.Set("order_id", p.OrderID)
	record.Set("owner_mobile_no", p.OwnerMobileNo)
	record.Set("turf_id", p.TurfID)
}

func setTurfPaymentFields(record *core.Record, p *models.TurfPayment) {
	record.Set("turf_id", p.TurfID)
	record.Set("owner_mobile_no", p.OwnerMobileNo)
	record.Set("payment_id", p.PaymentID)
	record.Set("amount", p.Amount.InexactFloat64())
}

func (s *PBPaymentStore) FindTurfPaymentByPaymentID(ctx context.Context, paymentID string) (*models.TurfPayment, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"turf_payments",
		"payment_id = {:paymentId}",
		dbx.Params{"paymentId": paymentID},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrPaymentNotFound
		}
		return nil, err
	}
	return turfPaymentFromRecord(record), nil
}

func (s *PBPaymentStore) SumEarnings(ctx context.Context, ownerMobileNo string, start, end time.Time) (decimal.Decimal, error) {
	payments, err := s.ListSince(ctx, ownerMobileNo, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (s *PBPaymentStore) ListSince(ctx context.Context, ownerMobileNo string, start, end time.Time) ([]*models.TurfPayment, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery("turf_payments").
		AndWhere(dbx.HashExp{"owner_mobile_no": ownerMobileNo}).
		AndWhere(dbx.Between("created", start.UTC().Format("2006-01-02 15:04:05.000Z"), end.UTC().Format("2006-01-02 15:04:05.000Z"))).
		OrderBy("created DESC").
		All(&records)
	if err != nil {
		return nil, err
	}

	payments := make([]*models.TurfPayment, 0, len(records))
	for _, r := range records {
		payments = append(payments, turfPaymentFromRecord(r))
	}
	return payments, nil
}

// ---- record conversion ----

func turfFromRecord(r *core.Record) (*models.Turf, error) {
	slots := []models.Slot{}
	if err := r.UnmarshalJSONField("slots", &slots); err != nil {
		return nil, err
	}
	amenities := []string{}
	// amenties may be absent on older records
	_ = r.UnmarshalJSONField("amenties", &amenities)

	return &models.Turf{
		ID:               r.Id,
		Category:         r.GetString("category"),
		TurfName:         r.GetString("turfname"),
		Location:         r.GetString("location"),
		Description:      r.GetString("description"),
		Images:           r.GetString("images"),
		PlayWithStranger: r.GetBool("playwithstranger"),
		Court:            r.GetInt("court"),
		Amenities:        amenities,
		Rating:           r.GetFloat("rating"),
		Slots:            slots,
		Discounts:        r.GetFloat("discounts"),
		OwnerMobileNo:    r.GetString("owner_mobile_no"),
	}, nil
}

func turfsFromRecords(records []*core.Record) ([]*models.Turf, error) {
	turfs := make([]*models.Turf, 0, len(records))
	for _, r := range records {
		t, err := turfFromRecord(r)
		if err != nil {
			return nil, err
		}
		turfs = append(turfs, t)
	}
	return turfs, nil
}

func bookingFromRecord(r *core.Record) (*models.Booking, error) {
	members := []models.Member{}
	if err := r.UnmarshalJSONField("members", &members); err != nil {
		return nil, err
	}

	return &models.Booking{
		ID:               r.Id,
		UserID:           r.GetString("user_id"),
		TurfID:           r.GetString("turf_id"),
		TurfName:         r.GetString("turf_name"),
		TurfImage:        r.GetString("turf_image"),
		Location:         r.GetString("location"),
		Court:            r.GetString("court"),
		Date:             r.GetString("date"),
		Slot:             r.GetString("slot"),
		PlayWithStranger: r.GetBool("play_with_stranger"),
		TotalMembers:     r.GetInt("total_members"),
		RemainingMembers: r.GetInt("remaining_members"),
		Members:          members,
		Price:            decimal.NewFromFloat(r.GetFloat("price")),
		Created:          r.GetDateTime("created").Time(),
	}, nil
}

func bookingsFromRecords(records []*core.Record) ([]*models.Booking, error) {
	bookings := make([]*models.Booking, 0, len(records))
	for _, r := range records {
		b, err := bookingFromRecord(r)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func playerFromRecord(r *core.Record) (*models.Player, error) {
	favs := []string{}
	_ = r.UnmarshalJSONField("fav_turfs", &favs)

	return &models.Player{
		ID:              r.Id,
		FirstName:       r.GetString("firstname"),
		LastName:        r.GetString("lastname"),
		Profile:         r.GetString("profile"),
		MobileNo:        r.GetString("mobileno"),
		InterestedSport: r.GetString("intrestedsports"),
		Level:           r.GetString("level"),
		Age:             r.GetInt("age"),
		IsVerified:      r.GetBool("is_verified"),
		Location:        r.GetString("location"),
		FavTurfs:        favs,
	}, nil
}

func turfPaymentFromRecord(r *core.Record) *models.TurfPayment {
	return &models.TurfPayment{
		ID:            r.Id,
		TurfID:        r.GetString("turf_id"),
		OwnerMobileNo: r.GetString("owner_mobile_no"),
		PaymentID:     r.GetString("payment_id"),
		Amount:        decimal.NewFromFloat(r.GetFloat("amount")),
		Created:       r.GetDateTime("created").Time(),
	}
}

// isUniqueViolation classifies a Save failure caused by the unique index on
// (turf_id, court, date, slot). PocketBase normalizes unique-index errors
// into validation.Errors with a not-unique code before the raw SQLite
// message would surface, so both shapes are checked.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			var ve validation.Error
			if errors.As(fieldErr, &ve) && ve.Code() == "validation_not_unique" {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
