package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- Users ---

const userCols = `id, email, nickname, coalesce(profile_image_url,''), created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, email, password, nickname string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	var u User
	err = s.db.QueryRowContext(ctx,
		`insert into users(email, password_hash, nickname) values($1,$2,$3) returning `+userCols,
		strings.ToLower(email), string(hash), nickname).
		Scan(&u.ID, &u.Email, &u.Nickname, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return User{}, ErrConflict
	}
	return u, err
}

func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select `+userCols+` from users where id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Nickname, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) userCredsByEmail(ctx context.Context, email string) (User, string, error) {
	var u User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`select `+userCols+`, password_hash from users where lower(email)=lower($1)`, email).
		Scan(&u.ID, &u.Email, &u.Nickname, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	return u, hash, err
}

// Authenticate verifies the password and returns the user.
func (s *Store) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, hash, err := s.userCredsByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, id int64, nickname, profileImageURL *string) (User, error) {
	set := []string{}
	args := []any{}
	idx := 1
	if nickname != nil {
		set = append(set, fmt.Sprintf("nickname=$%d", idx))
		args = append(args, *nickname)
		idx++
	}
	if profileImageURL != nil {
		set = append(set, fmt.Sprintf("profile_image_url=nullif($%d,'')", idx))
		args = append(args, *profileImageURL)
		idx++
	}
	if len(set) == 0 {
		return s.UserByID(ctx, id)
	}
	set = append(set, "updated_at=now()")
	args = append(args, id)
	var u User
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`update users set %s where id=$%d returning `+userCols, strings.Join(set, ", "), idx), args...).
		Scan(&u.ID, &u.Email, &u.Nickname, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// ChangePassword verifies the current password before storing the new one.
func (s *Store) ChangePassword(ctx context.Context, id int64, current, next string) error {
	var hash string
	err := s.db.QueryRowContext(ctx, `select password_hash from users where id=$1`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return ErrForbidden
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `update users set password_hash=$1, updated_at=now() where id=$2`, string(newHash), id)
	return err
}

// --- Dashboards ---

// ListDashboards returns dashboards the user owns or is a member of,
// newest first, with createdByMe computed for the viewer.
func (s *Store) ListDashboards(ctx context.Context, userID int64, page, size int) ([]Dashboard, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from dashboards d join dashboard_members m on m.dashboard_id=d.id where m.user_id=$1`,
		userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx,
		`select d.id, d.title, d.color, d.user_id, d.created_at, d.updated_at, d.user_id=$1
		 from dashboards d join dashboard_members m on m.dashboard_id=d.id
		 where m.user_id=$1 order by d.created_at desc, d.id desc limit $2 offset $3`,
		userID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []Dashboard
	for rows.Next() {
		var d Dashboard
		if err := rows.Scan(&d.ID, &d.Title, &d.Color, &d.UserID, &d.CreatedAt, &d.UpdatedAt, &d.CreatedByMe); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateDashboard(ctx context.Context, userID int64, title, color string) (Dashboard, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Dashboard{}, err
	}
	defer func() { _ = tx.Rollback() }()
	var d Dashboard
	err = tx.QueryRowContext(ctx,
		`insert into dashboards(title, color, user_id) values($1,$2,$3)
		 returning id, title, color, user_id, created_at, updated_at`,
		title, color, userID).
		Scan(&d.ID, &d.Title, &d.Color, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Dashboard{}, err
	}
	// the creator is the owning member
	if _, err := tx.ExecContext(ctx,
		`insert into dashboard_members(dashboard_id, user_id, is_owner) values($1,$2,true)`,
		d.ID, userID); err != nil {
		return Dashboard{}, err
	}
	if err := tx.Commit(); err != nil {
		return Dashboard{}, err
	}
	d.CreatedByMe = true
	return d, nil
}

func (s *Store) GetDashboard(ctx context.Context, id, viewerID int64) (Dashboard, error) {
	var d Dashboard
	err := s.db.QueryRowContext(ctx,
		`select id, title, color, user_id, created_at, updated_at, user_id=$2 from dashboards where id=$1`,
		id, viewerID).
		Scan(&d.ID, &d.Title, &d.Color, &d.UserID, &d.CreatedAt, &d.UpdatedAt, &d.CreatedByMe)
	if errors.Is(err, sql.ErrNoRows) {
		return Dashboard{}, ErrNotFound
	}
	return d, err
}

func (s *Store) UpdateDashboard(ctx context.Context, id int64, title, color *string) error {
	set := []string{}
	args := []any{}
	idx := 1
	if title != nil {
		set = append(set, fmt.Sprintf("title=$%d", idx))
		args = append(args, *title)
		idx++
	}
	if color != nil {
		set = append(set, fmt.Sprintf("color=$%d", idx))
		args = append(args, *color)
		idx++
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at=now()")
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`update dashboards set %s where id=$%d`, strings.Join(set, ", "), idx), args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDashboard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from dashboards where id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) IsDashboardOwner(ctx context.Context, dashboardID, userID int64) (bool, error) {
	var own bool
	err := s.db.QueryRowContext(ctx, `select user_id=$2 from dashboards where id=$1`, dashboardID, userID).Scan(&own)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	return own, err
}

func (s *Store) IsDashboardMember(ctx context.Context, dashboardID, userID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`select count(*) from dashboard_members where dashboard_id=$1 and user_id=$2`,
		dashboardID, userID).Scan(&n)
	return n > 0, err
}

// --- Columns ---

const columnCols = `id, title, dashboard_id, created_at, updated_at`

func (s *Store) ColumnsByDashboard(ctx context.Context, dashboardID int64) ([]Column, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+columnCols+` from columns where dashboard_id=$1 order by id`, dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.ID, &c.Title, &c.DashboardID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CountColumns(ctx context.Context, dashboardID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `select count(*) from columns where dashboard_id=$1`, dashboardID).Scan(&n)
	return n, err
}

// ColumnTitleExists matches case-insensitively; excludeID skips the column
// being renamed.
func (s *Store) ColumnTitleExists(ctx context.Context, dashboardID int64, title string, excludeID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`select count(*) from columns where dashboard_id=$1 and lower(title)=lower($2) and id<>$3`,
		dashboardID, title, excludeID).Scan(&n)
	return n > 0, err
}

func (s *Store) CreateColumn(ctx context.Context, dashboardID int64, title string) (Column, error) {
	var c Column
	err := s.db.QueryRowContext(ctx,
		`insert into columns(dashboard_id, title) values($1,$2) returning `+columnCols,
		dashboardID, title).
		Scan(&c.ID, &c.Title, &c.DashboardID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Store) GetColumn(ctx context.Context, id int64) (Column, error) {
	var c Column
	err := s.db.QueryRowContext(ctx, `select `+columnCols+` from columns where id=$1`, id).
		Scan(&c.ID, &c.Title, &c.DashboardID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Column{}, ErrNotFound
	}
	return c, err
}

func (s *Store) UpdateColumnTitle(ctx context.Context, id int64, title string) (Column, error) {
	var c Column
	err := s.db.QueryRowContext(ctx,
		`update columns set title=$1, updated_at=now() where id=$2 returning `+columnCols,
		title, id).
		Scan(&c.ID, &c.Title, &c.DashboardID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Column{}, ErrNotFound
	}
	return c, err
}

func (s *Store) DeleteColumn(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from columns where id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Cards ---

const cardSelect = `select c.id, c.title, c.description, c.tags, c.due_date,
	c.assignee_user_id, coalesce(u.nickname,''), coalesce(u.profile_image_url,''),
	coalesce(c.image_url,''), c.column_id, c.dashboard_id, c.created_at, c.updated_at
	from cards c left join users u on u.id=c.assignee_user_id`

func scanCard(scan func(dest ...any) error) (Card, error) {
	var c Card
	var tags []byte
	var assigneeID sql.NullInt64
	var nickname, avatar string
	if err := scan(&c.ID, &c.Title, &c.Description, &tags, &c.DueDate,
		&assigneeID, &nickname, &avatar,
		&c.ImageURL, &c.ColumnID, &c.DashboardID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Card{}, err
	}
	c.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &c.Tags); err != nil {
			return Card{}, err
		}
	}
	if assigneeID.Valid {
		c.Assignee = &UserRef{ID: assigneeID.Int64, Nickname: nickname, ProfileImageURL: avatar}
	}
	return c, nil
}

// CardsByColumn pages forward from cursorID by ascending card id.
func (s *Store) CardsByColumn(ctx context.Context, columnID, cursorID int64, size int) ([]Card, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `select count(*) from cards where column_id=$1`, columnID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx,
		cardSelect+` where c.column_id=$1 and c.id>$2 order by c.id limit $3`,
		columnID, cursorID, size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

type CardFields struct {
	Title          *string
	Description    *string
	Tags           []string
	DueDate        *time.Time
	AssigneeUserID *int64
	ImageURL       *string
	ColumnID       *int64
}

func (s *Store) CreateCard(ctx context.Context, dashboardID, columnID int64, f CardFields) (Card, error) {
	tags, err := json.Marshal(f.Tags)
	if err != nil {
		return Card{}, err
	}
	if f.Tags == nil {
		tags = []byte("[]")
	}
	var id int64
	err = s.db.QueryRowContext(ctx,
		`insert into cards(dashboard_id, column_id, title, description, tags, due_date, assignee_user_id, image_url)
		 values($1,$2,$3,$4,$5,$6,$7,nullif($8,'')) returning id`,
		dashboardID, columnID, deref(f.Title), deref(f.Description), tags, f.DueDate, f.AssigneeUserID, deref(f.ImageURL)).
		Scan(&id)
	if err != nil {
		return Card{}, err
	}
	return s.GetCard(ctx, id)
}

func (s *Store) GetCard(ctx context.Context, id int64) (Card, error) {
	c, err := scanCard(s.db.QueryRowContext(ctx, cardSelect+` where c.id=$1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Card{}, ErrNotFound
	}
	return c, err
}

func (s *Store) UpdateCard(ctx context.Context, id int64, f CardFields) (Card, error) {
	set := []string{}
	args := []any{}
	idx := 1
	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s=$%d", col, idx))
		args = append(args, v)
		idx++
	}
	if f.Title != nil {
		add("title", *f.Title)
	}
	if f.Description != nil {
		add("description", *f.Description)
	}
	if f.Tags != nil {
		tags, err := json.Marshal(f.Tags)
		if err != nil {
			return Card{}, err
		}
		add("tags", tags)
	}
	if f.DueDate != nil {
		add("due_date", *f.DueDate)
	}
	if f.AssigneeUserID != nil {
		add("assignee_user_id", *f.AssigneeUserID)
	}
	if f.ImageURL != nil {
		add("image_url", *f.ImageURL)
	}
	if f.ColumnID != nil {
		add("column_id", *f.ColumnID)
	}
	if len(set) == 0 {
		return s.GetCard(ctx, id)
	}
	set = append(set, "updated_at=now()")
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`update cards set %s where id=$%d`, strings.Join(set, ", "), idx), args...)
	if err != nil {
		return Card{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Card{}, ErrNotFound
	}
	return s.GetCard(ctx, id)
}

func (s *Store) DeleteCard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from cards where id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DashboardByCard(ctx context.Context, cardID int64) (int64, error) {
	var dashboardID int64
	err := s.db.QueryRowContext(ctx, `select dashboard_id from cards where id=$1`, cardID).Scan(&dashboardID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return dashboardID, err
}

// --- Comments ---

const commentSelect = `select c.id, c.content, c.card_id, c.user_id,
	coalesce(u.nickname,''), coalesce(u.profile_image_url,''), c.created_at, c.updated_at
	from comments c join users u on u.id=c.user_id`

func scanComment(scan func(dest ...any) error) (Comment, error) {
	var c Comment
	if err := scan(&c.ID, &c.Content, &c.CardID, &c.Author.ID,
		&c.Author.Nickname, &c.Author.ProfileImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Store) CommentsByCard(ctx context.Context, cardID, cursorID int64, size int) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		commentSelect+` where c.card_id=$1 and c.id>$2 order by c.id limit $3`,
		cardID, cursorID, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Comment
	for rows.Next() {
		c, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateComment(ctx context.Context, cardID, userID int64, content string) (Comment, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`insert into comments(card_id, user_id, content) values($1,$2,$3) returning id`,
		cardID, userID, content).Scan(&id)
	if err != nil {
		return Comment{}, err
	}
	return s.GetComment(ctx, id)
}

func (s *Store) GetComment(ctx context.Context, id int64) (Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx, commentSelect+` where c.id=$1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

// UpdateComment is author-only; editing someone else's comment is forbidden.
func (s *Store) UpdateComment(ctx context.Context, id, userID int64, content string) (Comment, error) {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	if c.Author.ID != userID {
		return Comment{}, ErrForbidden
	}
	_, err = s.db.ExecContext(ctx, `update comments set content=$1, updated_at=now() where id=$2`, content, id)
	if err != nil {
		return Comment{}, err
	}
	return s.GetComment(ctx, id)
}

func (s *Store) DeleteComment(ctx context.Context, id, userID int64) error {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if c.Author.ID != userID {
		return ErrForbidden
	}
	_, err = s.db.ExecContext(ctx, `delete from comments where id=$1`, id)
	return err
}

// --- Members ---

func (s *Store) MembersByDashboard(ctx context.Context, dashboardID int64, page, size int) ([]Member, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from dashboard_members where dashboard_id=$1`, dashboardID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx,
		`select m.id, m.user_id, u.email, u.nickname, coalesce(u.profile_image_url,''), m.is_owner, m.created_at, m.updated_at
		 from dashboard_members m join users u on u.id=m.user_id
		 where m.dashboard_id=$1 order by m.id limit $2 offset $3`,
		dashboardID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Email, &m.Nickname, &m.ProfileImageURL, &m.IsOwner, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (s *Store) MemberByID(ctx context.Context, id int64) (Member, int64, error) {
	var m Member
	var dashboardID int64
	err := s.db.QueryRowContext(ctx,
		`select m.id, m.user_id, u.email, u.nickname, coalesce(u.profile_image_url,''), m.is_owner, m.created_at, m.updated_at, m.dashboard_id
		 from dashboard_members m join users u on u.id=m.user_id where m.id=$1`, id).
		Scan(&m.ID, &m.UserID, &m.Email, &m.Nickname, &m.ProfileImageURL, &m.IsOwner, &m.CreatedAt, &m.UpdatedAt, &dashboardID)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, 0, ErrNotFound
	}
	return m, dashboardID, err
}

// DeleteMember removes a membership row. The owner row cannot be removed;
// a non-owner leaving their own dashboard goes through the same path.
func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	m, _, err := s.MemberByID(ctx, id)
	if err != nil {
		return err
	}
	if m.IsOwner {
		return ErrForbidden
	}
	_, err = s.db.ExecContext(ctx, `delete from dashboard_members where id=$1`, id)
	return err
}

// --- Invitations ---

const invitationSelect = `select i.id, i.invite_accepted, i.created_at, i.updated_at,
	d.id, d.title,
	ir.id, ir.nickname, ir.email, coalesce(ir.profile_image_url,''),
	ie.id, ie.nickname, ie.email, coalesce(ie.profile_image_url,'')
	from invitations i
	join dashboards d on d.id=i.dashboard_id
	join users ir on ir.id=i.inviter_user_id
	join users ie on ie.id=i.invitee_user_id`

func scanInvitation(teamID string, scan func(dest ...any) error) (Invitation, error) {
	var in Invitation
	if err := scan(&in.ID, &in.InviteAccepted, &in.CreatedAt, &in.UpdatedAt,
		&in.Dashboard.ID, &in.Dashboard.Title,
		&in.Inviter.ID, &in.Inviter.Nickname, &in.Inviter.Email, &in.Inviter.ProfileImageURL,
		&in.Invitee.ID, &in.Invitee.Nickname, &in.Invitee.Email, &in.Invitee.ProfileImageURL); err != nil {
		return Invitation{}, err
	}
	in.TeamID = teamID
	return in, nil
}

// CreateInvitation invites a registered user by email. Unknown invitee is
// ErrNotFound; an existing membership or pending invitation is ErrConflict.
func (s *Store) CreateInvitation(ctx context.Context, teamID string, dashboardID, inviterID int64, inviteeEmail string) (Invitation, error) {
	invitee, err := s.userByEmail(ctx, inviteeEmail)
	if err != nil {
		return Invitation{}, err
	}
	if member, err := s.IsDashboardMember(ctx, dashboardID, invitee.ID); err != nil {
		return Invitation{}, err
	} else if member {
		return Invitation{}, ErrConflict
	}
	var pending int
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from invitations where dashboard_id=$1 and invitee_user_id=$2 and invite_accepted is null`,
		dashboardID, invitee.ID).Scan(&pending); err != nil {
		return Invitation{}, err
	}
	if pending > 0 {
		return Invitation{}, ErrConflict
	}
	var id int64
	if err := s.db.QueryRowContext(ctx,
		`insert into invitations(dashboard_id, inviter_user_id, invitee_user_id) values($1,$2,$3) returning id`,
		dashboardID, inviterID, invitee.ID).Scan(&id); err != nil {
		return Invitation{}, err
	}
	return s.GetInvitation(ctx, teamID, id)
}

func (s *Store) userByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select `+userCols+` from users where lower(email)=lower($1)`, email).
		Scan(&u.ID, &u.Email, &u.Nickname, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) GetInvitation(ctx context.Context, teamID string, id int64) (Invitation, error) {
	in, err := scanInvitation(teamID, s.db.QueryRowContext(ctx, invitationSelect+` where i.id=$1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Invitation{}, ErrNotFound
	}
	return in, err
}

func (s *Store) InvitationsByDashboard(ctx context.Context, teamID string, dashboardID int64, page, size int) ([]Invitation, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from invitations where dashboard_id=$1 and invite_accepted is null`,
		dashboardID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx,
		invitationSelect+` where i.dashboard_id=$1 and i.invite_accepted is null order by i.id limit $2 offset $3`,
		dashboardID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []Invitation
	for rows.Next() {
		in, err := scanInvitation(teamID, rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, in)
	}
	return out, total, rows.Err()
}

// PendingInvitationsForUser pages forward from cursorID by ascending
// invitation id; title filters on the dashboard title when non-empty.
func (s *Store) PendingInvitationsForUser(ctx context.Context, teamID string, userID, cursorID int64, size int, title string) ([]Invitation, error) {
	q := invitationSelect + ` where i.invitee_user_id=$1 and i.invite_accepted is null and i.id>$2`
	args := []any{userID, cursorID}
	if title != "" {
		q += ` and d.title ilike $3`
		args = append(args, "%"+title+"%")
	}
	q += fmt.Sprintf(` order by i.id limit $%d`, len(args)+1)
	args = append(args, size)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Invitation
	for rows.Next() {
		in, err := scanInvitation(teamID, rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// RespondInvitation records the invitee's decision; accepting also creates
// the member row. Only the invitee may respond, and only while pending.
func (s *Store) RespondInvitation(ctx context.Context, teamID string, id, inviteeID int64, accepted bool) (Invitation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Invitation{}, err
	}
	defer func() { _ = tx.Rollback() }()
	var dashboardID int64
	err = tx.QueryRowContext(ctx,
		`update invitations set invite_accepted=$1, updated_at=now()
		 where id=$2 and invitee_user_id=$3 and invite_accepted is null
		 returning dashboard_id`,
		accepted, id, inviteeID).Scan(&dashboardID)
	if errors.Is(err, sql.ErrNoRows) {
		return Invitation{}, ErrNotFound
	}
	if err != nil {
		return Invitation{}, err
	}
	if accepted {
		if _, err := tx.ExecContext(ctx,
			`insert into dashboard_members(dashboard_id, user_id, is_owner) values($1,$2,false)
			 on conflict (dashboard_id, user_id) do nothing`,
			dashboardID, inviteeID); err != nil {
			return Invitation{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Invitation{}, err
	}
	return s.GetInvitation(ctx, teamID, id)
}

// DeleteInvitation cancels a pending invitation from the inviter's side.
func (s *Store) DeleteInvitation(ctx context.Context, id, dashboardID int64) error {
	res, err := s.db.ExecContext(ctx,
		`delete from invitations where id=$1 and dashboard_id=$2 and invite_accepted is null`,
		id, dashboardID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const schema = `
create table if not exists users(
    id bigserial primary key,
    email text unique not null,
    password_hash text not null default '',
    nickname text not null default '',
    profile_image_url text,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create table if not exists dashboards(
    id bigserial primary key,
    title text not null check (length(title) > 0),
    color text not null default '#7AC555',
    user_id bigint not null references users(id) on delete cascade,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create table if not exists dashboard_members(
    id bigserial primary key,
    dashboard_id bigint not null references dashboards(id) on delete cascade,
    user_id bigint not null references users(id) on delete cascade,
    is_owner boolean not null default false,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now(),
    unique(dashboard_id, user_id)
);
create index if not exists dashboard_members_user_idx on dashboard_members(user_id);

create table if not exists columns(
    id bigserial primary key,
    dashboard_id bigint not null references dashboards(id) on delete cascade,
    title text not null check (length(title) > 0),
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
create index if not exists columns_dashboard_idx on columns(dashboard_id);

create table if not exists cards(
    id bigserial primary key,
    dashboard_id bigint not null references dashboards(id) on delete cascade,
    column_id bigint not null references columns(id) on delete cascade,
    title text not null check (length(title) > 0),
    description text not null default '',
    tags jsonb not null default '[]',
    due_date timestamptz,
    assignee_user_id bigint references users(id) on delete set null,
    image_url text,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
create index if not exists cards_column_idx on cards(column_id, id);

create table if not exists comments(
    id bigserial primary key,
    card_id bigint not null references cards(id) on delete cascade,
    user_id bigint not null references users(id) on delete cascade,
    content text not null check (length(content) > 0),
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
create index if not exists comments_card_idx on comments(card_id, id);

create table if not exists invitations(
    id bigserial primary key,
    dashboard_id bigint not null references dashboards(id) on delete cascade,
    inviter_user_id bigint not null references users(id) on delete cascade,
    invitee_user_id bigint not null references users(id) on delete cascade,
    invite_accepted boolean,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
create index if not exists invitations_invitee_idx on invitations(invitee_user_id, id);
`
