package usecase

import (
	"context"
	"fmt"
	"time"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"
	"mailgate/pkg/mail"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory fakes untuk semua repository, dipakai lintas file test.

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	failFind  error
	failWrite error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.failFind != nil {
		return nil, f.failFind
	}
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.failFind != nil {
		return nil, f.failFind
	}
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	if f.failFind != nil {
		return nil, f.failFind
	}
	out := make([]*entity.User, 0, len(f.users))
	for _, user := range f.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = false
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.UserRole) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepo) UpdateMustChangePassword(_ context.Context, id uuid.UUID, flag bool) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.MustChangePassword = flag
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	delete(f.users, id)
	return nil
}

type fakeAPITokenRepo struct {
	tokens map[uuid.UUID]*entity.APIToken
}

func newFakeAPITokenRepo() *fakeAPITokenRepo {
	return &fakeAPITokenRepo{tokens: map[uuid.UUID]*entity.APIToken{}}
}

func (f *fakeAPITokenRepo) Create(_ context.Context, token *entity.APIToken) error {
	clone := *token
	f.tokens[token.ID] = &clone
	return nil
}

func (f *fakeAPITokenRepo) FindOwnerByHash(_ context.Context, tokenHash string) (*entity.User, error) {
	return nil, nil
}

func (f *fakeAPITokenRepo) TouchLastUsed(_ context.Context, tokenHash string) error {
	return nil
}

func (f *fakeAPITokenRepo) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.APIToken, error) {
	out := []*entity.APIToken{}
	for _, token := range f.tokens {
		if token.UserID == userID {
			clone := *token
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeAPITokenRepo) DeleteOwned(_ context.Context, id, userID uuid.UUID) error {
	token, ok := f.tokens[id]
	if !ok || token.UserID != userID {
		return fmt.Errorf("token %s not found", id.String())
	}
	delete(f.tokens, id)
	return nil
}

type fakePendingSignupRepo struct {
	rows map[uuid.UUID]*entity.PendingSignup
}

func newFakePendingSignupRepo() *fakePendingSignupRepo {
	return &fakePendingSignupRepo{rows: map[uuid.UUID]*entity.PendingSignup{}}
}

func (f *fakePendingSignupRepo) Create(_ context.Context, pending *entity.PendingSignup) error {
	clone := *pending
	f.rows[pending.ID] = &clone
	return nil
}

func (f *fakePendingSignupRepo) FindByToken(_ context.Context, token string) (*entity.PendingSignup, error) {
	for _, row := range f.rows {
		if row.VerificationToken == token {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakePendingSignupRepo) DeleteByEmail(_ context.Context, email string) error {
	for id, row := range f.rows {
		if row.Email == email {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakePendingSignupRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

type fakeResetTokenRepo struct {
	rows map[uuid.UUID]*entity.ResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{rows: map[uuid.UUID]*entity.ResetToken{}}
}

func (f *fakeResetTokenRepo) Create(_ context.Context, token *entity.ResetToken) error {
	clone := *token
	f.rows[token.ID] = &clone
	return nil
}

func (f *fakeResetTokenRepo) FindByToken(_ context.Context, token string) (*entity.ResetToken, error) {
	for _, row := range f.rows {
		if row.Token == token {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeResetTokenRepo) DeleteByToken(_ context.Context, token string) error {
	for id, row := range f.rows {
		if row.Token == token {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeResetTokenRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for id, row := range f.rows {
		if row.UserID == userID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uuid.UUID]*entity.Account{}}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	clone := *account
	f.accounts[account.ID] = &clone
	return nil
}

func (f *fakeAccountRepo) FindAll(_ context.Context) ([]*entity.Account, error) {
	out := []*entity.Account{}
	for _, account := range f.accounts {
		clone := *account
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	clone := *account
	return &clone, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindActiveByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email && account.IsActive {
			clone := *account
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) UpdateIsActive(_ context.Context, id uuid.UUID, isActive bool) error {
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("account %s not found", id.String())
	}
	account.IsActive = isActive
	return nil
}

func (f *fakeAccountRepo) UpdatePassword(_ context.Context, id uuid.UUID, password string) error {
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("account %s not found", id.String())
	}
	account.Password = password
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.accounts[id]; !ok {
		return fmt.Errorf("account %s not found", id.String())
	}
	delete(f.accounts, id)
	return nil
}

type fakeAliasRepo struct {
	aliases  map[uuid.UUID]*entity.Alias
	accounts *fakeAccountRepo
}

func newFakeAliasRepo(accounts *fakeAccountRepo) *fakeAliasRepo {
	return &fakeAliasRepo{aliases: map[uuid.UUID]*entity.Alias{}, accounts: accounts}
}

func (f *fakeAliasRepo) join(alias *entity.Alias) *entity.AliasWithAccount {
	account := f.accounts.accounts[alias.AccountID]
	if account == nil {
		return nil
	}
	return &entity.AliasWithAccount{
		Alias:              *alias,
		AccountEmail:       account.Email,
		AccountDisplayName: account.DisplayName,
		AccountPassword:    account.Password,
		AccountIsActive:    account.IsActive,
	}
}

func (f *fakeAliasRepo) Create(_ context.Context, alias *entity.Alias) error {
	clone := *alias
	f.aliases[alias.ID] = &clone
	return nil
}

func (f *fakeAliasRepo) FindAllWithAccount(_ context.Context) ([]*entity.AliasWithAccount, error) {
	out := []*entity.AliasWithAccount{}
	for _, alias := range f.aliases {
		if joined := f.join(alias); joined != nil {
			out = append(out, joined)
		}
	}
	return out, nil
}

func (f *fakeAliasRepo) FindByIDWithAccount(_ context.Context, id uuid.UUID) (*entity.AliasWithAccount, error) {
	alias, ok := f.aliases[id]
	if !ok {
		return nil, nil
	}
	return f.join(alias), nil
}

func (f *fakeAliasRepo) FindByEmailWithAccount(_ context.Context, aliasEmail string) (*entity.AliasWithAccount, error) {
	for _, alias := range f.aliases {
		if alias.AliasEmail == aliasEmail {
			return f.join(alias), nil
		}
	}
	return nil, nil
}

func (f *fakeAliasRepo) ExistsByAliasEmail(_ context.Context, aliasEmail string) (bool, error) {
	for _, alias := range f.aliases {
		if alias.AliasEmail == aliasEmail {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAliasRepo) UpdateAccountID(_ context.Context, id, accountID uuid.UUID) error {
	alias, ok := f.aliases[id]
	if !ok {
		return fmt.Errorf("alias %s not found", id.String())
	}
	alias.AccountID = accountID
	return nil
}

func (f *fakeAliasRepo) UpdateDisplayName(_ context.Context, id uuid.UUID, displayName string) error {
	alias, ok := f.aliases[id]
	if !ok {
		return fmt.Errorf("alias %s not found", id.String())
	}
	alias.DisplayName = &displayName
	return nil
}

func (f *fakeAliasRepo) UpdateIsActive(_ context.Context, id uuid.UUID, isActive bool) error {
	alias, ok := f.aliases[id]
	if !ok {
		return fmt.Errorf("alias %s not found", id.String())
	}
	alias.IsActive = isActive
	return nil
}

func (f *fakeAliasRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.aliases[id]; !ok {
		return fmt.Errorf("alias %s not found", id.String())
	}
	delete(f.aliases, id)
	return nil
}

type fakeDefaultSenderRepo struct {
	current *entity.DefaultSender
}

func (f *fakeDefaultSenderRepo) Get(_ context.Context) (*entity.DefaultSender, error) {
	if f.current == nil {
		return nil, nil
	}
	clone := *f.current
	return &clone, nil
}

func (f *fakeDefaultSenderRepo) Upsert(_ context.Context, sender *entity.DefaultSender) error {
	clone := *sender
	f.current = &clone
	return nil
}

func (f *fakeDefaultSenderRepo) DeleteIfMatches(_ context.Context, kind entity.SenderKind, id uuid.UUID) error {
	if f.current != nil && f.current.SenderType == kind && f.current.SenderID == id {
		f.current = nil
	}
	return nil
}

// fakeMailer merekam pesan keluar; set fail untuk mensimulasikan SMTP down.
type fakeMailer struct {
	sent []mail.Message
	fail error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeVerifier struct {
	ok   bool
	err  error
	seen []string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (bool, error) {
	f.seen = append(f.seen, token)
	return f.ok, f.err
}

type testRepos struct {
	users          *fakeUserRepo
	apiTokens      *fakeAPITokenRepo
	pendingSignups *fakePendingSignupRepo
	resetTokens    *fakeResetTokenRepo
	accounts       *fakeAccountRepo
	aliases        *fakeAliasRepo
	defaultSender  *fakeDefaultSenderRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	users := newFakeUserRepo()
	apiTokens := newFakeAPITokenRepo()
	pendingSignups := newFakePendingSignupRepo()
	resetTokens := newFakeResetTokenRepo()
	accounts := newFakeAccountRepo()
	aliases := newFakeAliasRepo(accounts)
	defaultSender := &fakeDefaultSenderRepo{}

	repo := &repository.Repository{
		User:          users,
		APIToken:      apiTokens,
		PendingSignup: pendingSignups,
		ResetToken:    resetTokens,
		Account:       accounts,
		Alias:         aliases,
		DefaultSender: defaultSender,
	}

	return repo, &testRepos{
		users:          users,
		apiTokens:      apiTokens,
		pendingSignups: pendingSignups,
		resetTokens:    resetTokens,
		accounts:       accounts,
		aliases:        aliases,
		defaultSender:  defaultSender,
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedUser(repos *testRepos, email, passwordHash string, role entity.UserRole) *entity.User {
	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:              email,
		PasswordHash:       passwordHash,
		Role:               role,
		MustChangePassword: false,
	}
	repos.users.users[user.ID] = user
	return user
}

func seedAccount(repos *testRepos, email, displayName, password string, active bool) *entity.Account {
	account := &entity.Account{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		Password:    password,
		IsActive:    active,
	}
	repos.accounts.accounts[account.ID] = account
	return account
}

func seedAlias(repos *testRepos, aliasEmail string, displayName *string, active bool, accountID uuid.UUID) *entity.Alias {
	alias := &entity.Alias{
		ID:          uuid.New(),
		AliasEmail:  aliasEmail,
		DisplayName: displayName,
		IsActive:    active,
		AccountID:   accountID,
	}
	repos.aliases.aliases[alias.ID] = alias
	return alias
}
