package memory

import (
	"context"
	"sort"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/shopspring/decimal"
)

type usersRepo struct{ base }

func (r *usersRepo) GetByID(_ context.Context, id int64) (u models.User, err error) {
	err = r.with(func(d *data) error {
		var ok bool
		if u, ok = d.users[id]; !ok {
			return errs.ErrNotFound
		}
		return nil
	})
	return u, err
}

func (r *usersRepo) List(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	err := r.with(func(d *data) error {
		for _, u := range d.users {
			out = append(out, u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (r *usersRepo) UpdateStatus(_ context.Context, id int64, status models.UserStatus) error {
	return r.with(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return errs.ErrNotFound
		}
		u.Status = status
		d.users[id] = u
		return nil
	})
}

type ledgerRepo struct{ base }

func (r *ledgerRepo) Balance(_ context.Context, userID int64) (b decimal.Decimal, err error) {
	err = r.with(func(d *data) error {
		u, ok := d.users[userID]
		if !ok {
			return errs.ErrNotFound
		}
		b = u.Balance
		return nil
	})
	return b, err
}

var errBalanceOverflow = errs.Invalid("balance would exceed %s", models.MaxMoney.String())

func (r *ledgerRepo) Credit(_ context.Context, userID int64, amount decimal.Decimal) (b decimal.Decimal, err error) {
	err = r.with(func(d *data) error {
		u, ok := d.users[userID]
		if !ok {
			return errs.ErrNotFound
		}
		nb := u.Balance.Add(amount)
		if nb.GreaterThan(models.MaxMoney) {
			return errBalanceOverflow
		}
		u.Balance = nb
		d.users[userID] = u
		b = u.Balance
		return nil
	})
	return b, err
}

func (r *ledgerRepo) Debit(_ context.Context, userID int64, amount decimal.Decimal) (b decimal.Decimal, err error) {
	err = r.with(func(d *data) error {
		u, ok := d.users[userID]
		if !ok {
			return errs.ErrNotFound
		}
		if u.Balance.LessThan(amount) {
			return errs.ErrInsufficientFunds
		}
		u.Balance = u.Balance.Sub(amount)
		d.users[userID] = u
		b = u.Balance
		return nil
	})
	return b, err
}

type ordersRepo struct{ base }

func (r *ordersRepo) Create(_ context.Context, o models.Order) (models.Order, error) {
	err := r.with(func(d *data) error {
		if _, dup := d.orders[o.ID]; dup {
			return errs.ErrDuplicateID
		}
		if o.UserID != nil {
			if _, ok := d.users[*o.UserID]; !ok {
				return errs.ErrNotFound
			}
		}
		if o.CreatedAt.IsZero() {
			o.CreatedAt = r.s.now()
		}
		d.orders[o.ID] = o
		d.orderSeq = append(d.orderSeq, o.ID)
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *ordersRepo) GetByID(_ context.Context, id string) (o models.Order, err error) {
	err = r.with(func(d *data) error {
		var ok bool
		if o, ok = d.orders[id]; !ok {
			return errs.ErrNotFound
		}
		return nil
	})
	return o, err
}

func (r *ordersRepo) List(_ context.Context, userID *int64, limit, offset int) ([]models.Order, error) {
	out := []models.Order{}
	err := r.with(func(d *data) error {
		skipped := 0
		for i := len(d.orderSeq) - 1; i >= 0 && len(out) < limit; i-- {
			o := d.orders[d.orderSeq[i]]
			if userID != nil && (o.UserID == nil || *o.UserID != *userID) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, o)
		}
		return nil
	})
	return out, err
}

type apiKeysRepo struct{ base }

func (r *apiKeysRepo) List(_ context.Context) ([]models.APIKey, error) {
	var out []models.APIKey
	err := r.with(func(d *data) error {
		out = append([]models.APIKey{}, d.apiKeys...)
		return nil
	})
	return out, err
}

func (r *apiKeysRepo) Create(_ context.Context, k models.APIKey) (models.APIKey, error) {
	err := r.with(func(d *data) error {
		d.nextKeyID++
		k.ID = d.nextKeyID
		k.Status = models.APIKeyEnabled
		k.UsageLimit = -1
		k.CurrentUsage = 0
		k.CreatedAt = r.s.now()
		d.apiKeys = append(d.apiKeys, k)
		return nil
	})
	return k, err
}

type settingsRepo struct{ base }

func (r *settingsRepo) All(_ context.Context) (map[string]string, error) {
	out := map[string]string{}
	err := r.with(func(d *data) error {
		for k, v := range d.settings {
			out[k] = v
		}
		return nil
	})
	return out, err
}

func (r *settingsRepo) Set(_ context.Context, key models.SettingKey, value string) error {
	return r.with(func(d *data) error {
		d.settings[string(key)] = value
		return nil
	})
}

type adminsRepo struct{ base }

func (r *adminsRepo) Count(_ context.Context) (n int64, err error) {
	err = r.with(func(d *data) error {
		n = int64(len(d.admins))
		return nil
	})
	return n, err
}

func (r *adminsRepo) Create(_ context.Context, a models.Admin) (models.Admin, error) {
	err := r.with(func(d *data) error {
		for _, x := range d.admins {
			if x.Email == a.Email {
				return errs.Invalid("admin %s already exists", a.Email)
			}
		}
		d.nextAdminID++
		a.ID = d.nextAdminID
		a.CreatedAt = r.s.now()
		d.admins = append(d.admins, a)
		return nil
	})
	return a, err
}

func (r *adminsRepo) GetByEmail(_ context.Context, email string) (a models.Admin, err error) {
	err = r.with(func(d *data) error {
		for _, x := range d.admins {
			if x.Email == email {
				a = x
				return nil
			}
		}
		return errs.ErrNotFound
	})
	return a, err
}

func (r *adminsRepo) TouchLogin(_ context.Context, id int64, at time.Time) error {
	return r.with(func(d *data) error {
		for i := range d.admins {
			if d.admins[i].ID == id {
				d.admins[i].LastLogin = &at
				return nil
			}
		}
		return errs.ErrNotFound
	})
}

type activityLogsRepo struct{ base }

func (r *activityLogsRepo) Create(_ context.Context, l models.ActivityLog) error {
	return r.with(func(d *data) error {
		d.nextLogID++
		l.ID = d.nextLogID
		l.CreatedAt = r.s.now()
		d.logs = append(d.logs, l)
		return nil
	})
}

func (r *activityLogsRepo) List(_ context.Context, limit int) ([]models.ActivityLog, error) {
	out := []models.ActivityLog{}
	err := r.with(func(d *data) error {
		for i := len(d.logs) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, d.logs[i])
		}
		return nil
	})
	return out, err
}

type statsRepo struct{ base }

func (r *statsRepo) Totals(_ context.Context) (models.Stats, error) {
	s := models.Stats{TotalRevenue: decimal.Zero}
	err := r.with(func(d *data) error {
		s.TotalUsers = int64(len(d.users))
		s.TotalOrders = int64(len(d.orders))
		for _, o := range d.orders {
			s.TotalRevenue = s.TotalRevenue.Add(o.Price)
		}
		for _, sub := range d.subs {
			if sub.status == "Active" {
				s.ActiveSubs++
			}
		}
		return nil
	})
	return s, err
}

func (r *statsRepo) Growth(_ context.Context, days int) ([]models.GrowthPoint, error) {
	today := r.s.now().UTC().Truncate(24 * time.Hour)
	out := make([]models.GrowthPoint, 0, days)
	err := r.with(func(d *data) error {
		for i := days - 1; i >= 0; i-- {
			from := today.AddDate(0, 0, -i)
			to := from.AddDate(0, 0, 1)
			in := func(t time.Time) bool { return !t.Before(from) && t.Before(to) }

			p := models.GrowthPoint{Name: from.Format("Mon"), Revenue: decimal.Zero}
			for _, o := range d.orders {
				if in(o.CreatedAt) {
					p.Revenue = p.Revenue.Add(o.Price)
				}
			}
			for _, u := range d.users {
				if in(u.CreatedAt) {
					p.Users++
				}
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (r *statsRepo) Plans(_ context.Context) ([]models.SubscriptionPlan, error) {
	var out []models.SubscriptionPlan
	err := r.with(func(d *data) error {
		out = append([]models.SubscriptionPlan{}, d.plans...)
		return nil
	})
	return out, err
}
