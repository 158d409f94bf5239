package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/temmaissaude/cotador/internal/auth"
	"github.com/temmaissaude/cotador/internal/cpf"
	"github.com/temmaissaude/cotador/internal/metrics"
	"github.com/temmaissaude/cotador/internal/repo"
	"github.com/temmaissaude/cotador/internal/util"
)

const senhaTamanho = 6

var (
	// ErrCredenciaisInvalidas indica falha na autenticação por CPF e senha.
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	// ErrCamposObrigatorios indica formulário incompleto.
	ErrCamposObrigatorios = errors.New("preencha todos os campos")
	// ErrSenhaInvalida indica senha fora do formato de 6 dígitos numéricos.
	ErrSenhaInvalida = errors.New("a senha deve conter exatamente 6 dígitos numéricos")
	// ErrCPFDuplicado indica CPF já cadastrado.
	ErrCPFDuplicado = errors.New("cpf já cadastrado")
	// ErrRefreshInvalid indica refresh token inválido ou expirado.
	ErrRefreshInvalid = errors.New("refresh token inválido")
)

type authRepository interface {
	GetUsuarioByEmailLogin(ctx context.Context, emailLogin string) (repo.Usuario, error)
	GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
	InsertUsuario(ctx context.Context, arg repo.InsertUsuarioParams) (repo.Usuario, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AuthService concentra cadastro, autenticação e sessões do cotador.
type AuthService struct {
	repo         authRepository
	redis        redisCommander
	jwt          *auth.JWTManager
	metricas     *metrics.Metrics
	refreshTTL   time.Duration
	adminCPF     string
	emailDominio string
}

// NewAuthService cria novo serviço.
func NewAuthService(r authRepository, redisClient redisCommander, jwtMgr *auth.JWTManager, metricas *metrics.Metrics, refreshTTL time.Duration, adminCPF, emailDominio string) *AuthService {
	return &AuthService{
		repo:         r,
		redis:        redisClient,
		jwt:          jwtMgr,
		metricas:     metricas,
		refreshTTL:   refreshTTL,
		adminCPF:     cpf.Digits(adminCPF),
		emailDominio: emailDominio,
	}
}

// JWT expõe o gerenciador de JWT (útil em middlewares).
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

// CadastroInput agrupa os campos do formulário de cadastro.
type CadastroInput struct {
	Nome     string
	Email    string
	Telefone string
	CPF      string
	Senha    string
}

// LoginResult representa o retorno padrão de autenticações.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	Usuario       repo.Usuario
	Roles         []string
	RefreshExpiry time.Time
}

// Cadastrar valida o formulário e cria o cadastro. O CPF reservado do
// administrador entra aprovado e com a flag de admin; qualquer outro entra
// pendente, aguardando aprovação no painel.
func (s *AuthService) Cadastrar(ctx context.Context, input CadastroInput) (repo.Usuario, error) {
	for _, campo := range []string{input.Nome, input.Email, input.Telefone, input.CPF, input.Senha} {
		if err := util.RequireString(campo, "campo"); err != nil {
			return repo.Usuario{}, ErrCamposObrigatorios
		}
	}
	if len(input.Senha) != senhaTamanho || !cpf.SenhaNumericaValida(input.Senha, senhaTamanho) {
		return repo.Usuario{}, ErrSenhaInvalida
	}

	digitos := cpf.Digits(input.CPF)
	isAdmin := digitos == s.adminCPF

	status := repo.StatusPendente
	if isAdmin {
		status = repo.StatusAprovado
	}

	senhaHash, err := auth.Hash(input.Senha)
	if err != nil {
		return repo.Usuario{}, err
	}

	usuario, err := s.repo.InsertUsuario(ctx, repo.InsertUsuarioParams{
		CPF:        digitos,
		Nome:       input.Nome,
		Email:      input.Email,
		Telefone:   cpf.Digits(input.Telefone),
		EmailLogin: cpf.EmailSintetico(digitos, s.emailDominio),
		SenhaHash:  senhaHash,
		IsAdmin:    isAdmin,
		Status:     status,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicado) {
			return repo.Usuario{}, ErrCPFDuplicado
		}
		return repo.Usuario{}, err
	}

	s.metricas.CadastrosCriados.Inc()
	log.Info().Str("usuario_id", usuario.ID.String()).Bool("admin", isAdmin).Msg("cadastro criado")
	return usuario, nil
}

// Login autentica por CPF e senha através do e-mail sintético.
// O status do cadastro não bloqueia a autenticação: um usuário pendente ou
// recusado recebe sessão e o próprio perfil, e a admissão fica a cargo do
// cliente.
func (s *AuthService) Login(ctx context.Context, cpfRaw, senha string) (*LoginResult, error) {
	if err := util.RequireString(cpfRaw, "cpf"); err != nil {
		return nil, ErrCamposObrigatorios
	}
	if err := util.RequireString(senha, "senha"); err != nil {
		return nil, ErrCamposObrigatorios
	}

	emailLogin := cpf.EmailSintetico(cpfRaw, s.emailDominio)
	usuario, err := s.repo.GetUsuarioByEmailLogin(ctx, emailLogin)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login: cpf não cadastrado")
			return nil, ErrCredenciaisInvalidas
		}
		return nil, err
	}

	ok, err := auth.Verify(senha, usuario.SenhaHash)
	if err != nil {
		log.Warn().Err(err).Msg("login: verificação de senha falhou")
		return nil, ErrCredenciaisInvalidas
	}
	if !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrCredenciaisInvalidas
	}

	return s.emitirSessao(ctx, usuario)
}

// GetUsuarioByID carrega o perfil pelo identificador do token.
func (s *AuthService) GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	return s.repo.GetUsuarioByID(ctx, id)
}

// Refresh rotaciona o refresh token e emite novo token de acesso.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*LoginResult, error) {
	hash := auth.HashRefreshToken(rawRefresh)
	key := auth.RefreshRedisKey(hash)

	subject, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	usuario, err := s.repo.GetUsuarioByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	// rotação: invalida o token usado antes de emitir o próximo
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return nil, err
	}

	return s.emitirSessao(ctx, usuario)
}

// Logout revoga o refresh token apresentado.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	hash := auth.HashRefreshToken(rawRefresh)
	return s.redis.Del(ctx, auth.RefreshRedisKey(hash)).Err()
}

func (s *AuthService) emitirSessao(ctx context.Context, usuario repo.Usuario) (*LoginResult, error) {
	roles := []string{"CORRETOR"}
	if usuario.IsAdmin {
		roles = append(roles, "ADMIN")
	}

	token, _, err := s.jwt.GenerateAccessToken(usuario.ID.String(), roles)
	if err != nil {
		return nil, err
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := time.Now().UTC().Add(s.refreshTTL)
	if err := s.redis.Set(ctx, auth.RefreshRedisKey(refreshHash), usuario.ID.String(), s.refreshTTL).Err(); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:   token,
		RefreshToken:  rawRefresh,
		Usuario:       usuario,
		Roles:         roles,
		RefreshExpiry: expiry,
	}, nil
}
