package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-family-finance/models"
)

const (
	transactionsTable = "transactions"
	usersTable        = "users"
	accessLogsTable   = "access_logs"

	// occurrenceConflict makes inserting an already materialised period a
	// no-op. Both PostgreSQL and SQLite accept this form.
	occurrenceConflict = "ON CONFLICT (owner_id, template_id, period) DO NOTHING"
)

var transactionColumns = []string{
	"id",
	"registered_on",
	"payment_date",
	"person",
	"responsible_party",
	"category",
	"kind",
	"amount",
	"description",
	"recurring",
	"fixed_day",
	"on_card",
	"investment",
	"meal_voucher",
	"payment_method",
	"installments",
	"installment_index",
	"status",
	"owner_id",
	"group_id",
	"shared",
	"template_id",
	"period",
}

// transactionInsertColumns is transactionColumns without the generated id.
var transactionInsertColumns = transactionColumns[1:]

var userColumns = []string{
	"id",
	"username",
	"password_hash",
	"role",
	"name",
	"email",
	"active",
	"group_id",
	"shared",
	"may_share",
	"created_at",
	"last_login_at",
}

var accessLogColumns = []string{"id", "user_id", "action", "description", "created_at"}

// visibilityPredicate restricts transactions to the rows uc may read.
// Admins see everything, shared users see their group, everybody else only
// sees their own rows. A nil result means no restriction.
func visibilityPredicate(uc models.UserContext) sq.Sqlizer {
	switch {
	case uc.IsAdmin():
		return nil
	case uc.Shared:
		return sq.Eq{"group_id": uc.Group}
	default:
		return sq.Eq{"owner_id": uc.ID}
	}
}

func notDeleted() sq.Sqlizer {
	return sq.NotEq{"status": string(models.StatusDeleted)}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern that declares
// backslash as its escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func buildListTransactionsQuery(b sq.StatementBuilderType, uc models.UserContext, filter models.TransactionFilter) (string, []any, error) {
	query := b.Select(transactionColumns...).
		From(transactionsTable).
		Where(notDeleted())

	if visible := visibilityPredicate(uc); visible != nil {
		query = query.Where(visible)
	}
	if !filter.From.IsZero() {
		query = query.Where(sq.GtOrEq{"payment_date": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(sq.LtOrEq{"payment_date": filter.To})
	}
	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(sq.Expr(`LOWER(description) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(search))+"%"))
	}

	return query.OrderBy("payment_date DESC", "id DESC").ToSql()
}

// buildFindVisibleOwnerQuery selects the owner of a live transaction if uc
// can see it.
func buildFindVisibleOwnerQuery(b sq.StatementBuilderType, id int64, uc models.UserContext) (string, []any, error) {
	query := b.Select("owner_id").
		From(transactionsTable).
		Where(sq.Eq{"id": id}).
		Where(notDeleted())

	if visible := visibilityPredicate(uc); visible != nil {
		query = query.Where(visible)
	}

	return query.ToSql()
}

func buildGetTransactionQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(transactionColumns...).
		From(transactionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func transactionValues(t models.Transaction) []any {
	return []any{
		t.RegisteredOn,
		t.PaymentDate,
		t.Person,
		t.ResponsibleParty,
		t.Category,
		string(t.Kind),
		t.Amount,
		t.Description,
		t.Recurring,
		t.FixedDay,
		t.OnCard,
		t.Investment,
		t.MealVoucher,
		t.PaymentMethod,
		t.Installments,
		t.InstallmentIndex,
		string(t.Status),
		t.OwnerID,
		t.Group,
		t.Shared,
		t.TemplateID,
		t.Period,
	}
}

func buildInsertTransactionQuery(b sq.StatementBuilderType, t models.Transaction) (string, []any, error) {
	return b.Insert(transactionsTable).
		Columns(transactionInsertColumns...).
		Values(transactionValues(t)...).
		Suffix("RETURNING id").
		ToSql()
}

func buildInsertOccurrenceQuery(b sq.StatementBuilderType, t models.Transaction) (string, []any, error) {
	return b.Insert(transactionsTable).
		Columns(transactionInsertColumns...).
		Values(transactionValues(t)...).
		Suffix(occurrenceConflict).
		ToSql()
}

// patchSetMap collects the columns a patch changes. Nil pointers and empty
// strings leave the column untouched.
func patchSetMap(patch models.TransactionPatch) map[string]any {
	set := make(map[string]any)

	setString := func(column string, value *string) {
		if value != nil && strings.TrimSpace(*value) != "" {
			set[column] = *value
		}
	}

	if patch.RegisteredOn != nil && !patch.RegisteredOn.IsZero() {
		set["registered_on"] = *patch.RegisteredOn
	}
	if patch.PaymentDate != nil && !patch.PaymentDate.IsZero() {
		set["payment_date"] = *patch.PaymentDate
	}
	setString("person", patch.Person)
	setString("responsible_party", patch.ResponsibleParty)
	setString("category", patch.Category)
	if patch.Kind != nil && *patch.Kind != "" {
		set["kind"] = string(*patch.Kind)
	}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	setString("description", patch.Description)
	setString("payment_method", patch.PaymentMethod)
	if patch.OnCard != nil {
		set["on_card"] = *patch.OnCard
	}
	if patch.Investment != nil {
		set["investment"] = *patch.Investment
	}
	if patch.MealVoucher != nil {
		set["meal_voucher"] = *patch.MealVoucher
	}

	return set
}

func buildUpdateTransactionQuery(b sq.StatementBuilderType, id int64, set map[string]any) (string, []any, error) {
	return b.Update(transactionsTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSoftDeleteQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Update(transactionsTable).
		Set("status", string(models.StatusDeleted)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildListTemplatesQuery selects the rows that drive recurrence: live,
// recurring and not themselves materialised occurrences.
func buildListTemplatesQuery(b sq.StatementBuilderType, ownerID *int64) (string, []any, error) {
	query := b.Select(transactionColumns...).
		From(transactionsTable).
		Where(sq.Eq{"recurring": true}).
		Where(notDeleted()).
		Where(sq.Eq{"template_id": nil})

	if ownerID != nil {
		query = query.Where(sq.Eq{"owner_id": *ownerID})
	}

	return query.OrderBy("id").ToSql()
}

func buildMaterializedPeriodsQuery(b sq.StatementBuilderType, templateID int64) (string, []any, error) {
	return b.Select("period").
		From(transactionsTable).
		Where(sq.Eq{"template_id": templateID}).
		ToSql()
}

func buildTransactionStatsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(
		"COALESCE(SUM(CASE WHEN status <> 'deleted' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN status <> 'deleted' AND kind = 'income' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN status <> 'deleted' AND kind = 'expense' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN status = 'deleted' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN status <> 'deleted' AND recurring AND template_id IS NULL THEN 1 ELSE 0 END), 0)",
	).From(transactionsTable).ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "password_hash", "role", "name", "email", "active", "group_id", "shared", "may_share", "created_at").
		Values(u.Username, u.PasswordHash, string(u.Role), u.Name, u.Email, u.Active, u.Group, u.Shared, u.MayShare, u.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

// buildListUsersQuery orders admins first, then by username.
func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		OrderBy("CASE WHEN role = 'admin' THEN 0 ELSE 1 END", "username").
		ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, userID int64, set map[string]any) (string, []any, error) {
	return b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildUserStatsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN role = 'admin' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN shared THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN shared THEN 0 ELSE 1 END), 0)",
		"COUNT(DISTINCT group_id)",
	).From(usersTable).ToSql()
}

func buildInsertAccessLogQuery(b sq.StatementBuilderType, entry models.AccessLog) (string, []any, error) {
	return b.Insert(accessLogsTable).
		Columns("user_id", "action", "description", "created_at").
		Values(entry.UserID, string(entry.Action), entry.Description, entry.CreatedAt).
		ToSql()
}

func buildListAccessLogsQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	query := b.Select(accessLogColumns...).
		From(accessLogsTable).
		OrderBy("created_at DESC", "id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	return query.ToSql()
}
