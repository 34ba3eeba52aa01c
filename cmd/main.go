package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/PrimaSeguros/api-corretora/internal/apolice"
	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/checklist"
	"github.com/PrimaSeguros/api-corretora/internal/cliente"
	"github.com/PrimaSeguros/api-corretora/internal/comentario"
	"github.com/PrimaSeguros/api-corretora/internal/corretor"
	"github.com/PrimaSeguros/api-corretora/internal/documento"
	"github.com/PrimaSeguros/api-corretora/internal/notificacao"
	"github.com/PrimaSeguros/api-corretora/internal/produto"
	"github.com/PrimaSeguros/api-corretora/internal/utils/db"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	if err := database.AutoMigrate(
		&corretor.Corretor{},
		&cliente.Cliente{},
		&venda.Venda{},
		&produto.Produto{},
		&apolice.Apolice{},
		&comentario.Comentario{},
		&documento.Documento{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := checklist.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate do checklist:", err)
	}
	if err := checklist.SemearModeloTrust(database); err != nil {
		log.Fatal("Erro ao semear modelo Trust:", err)
	}

	armazem := documento.NewArmazemMemoria()
	notificador := notificacao.NewWebhook()

	// Handlers
	corretorHandler := corretor.NewHandler(database)
	clienteHandler := cliente.NewHandler(database)
	vendaHandler := venda.NewHandler(database)
	produtoHandler := produto.NewHandler(database)
	apoliceHandler := apolice.NewHandler(database)
	comentarioHandler := comentario.NewHandler(database)
	documentoHandler := documento.NewHandler(database, armazem)
	checklistHandler := checklist.NewHandler(database, armazem, notificador)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", corretorHandler.Login).Methods("POST")
	r.HandleFunc("/clientes/login", clienteHandler.Login).Methods("POST")
	r.HandleFunc("/corretores", corretorHandler.Criar).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Corretores
	api.HandleFunc("/corretores", corretorHandler.ListarTodos).Methods("GET")
	api.HandleFunc("/corretores/{id}", corretorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/corretores/{id}", corretorHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/corretores/{id}/vendas", vendaHandler.ListarPorCorretor).Methods("GET")
	api.HandleFunc("/corretores/{id}/clientes", clienteHandler.ListarPorCorretor).Methods("GET")
	api.HandleFunc("/corretores/{id}/apolices", apoliceHandler.ListarPorCorretor).Methods("GET")

	// Clientes
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")

	// Vendas
	api.HandleFunc("/vendas", vendaHandler.Criar).Methods("POST")
	api.HandleFunc("/vendas/{id}", vendaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendas/{id}/status", vendaHandler.AtualizarStatus).Methods("PATCH")

	// Produtos
	api.HandleFunc("/produtos", produtoHandler.ListarAtivos).Methods("GET")

	// Apólices
	api.HandleFunc("/vendas/{id}/apolice", apoliceHandler.CriarParaVenda).Methods("POST")
	api.HandleFunc("/vendas/{id}/apolice", apoliceHandler.BuscarPorVenda).Methods("GET")
	api.HandleFunc("/apolices/{id}", apoliceHandler.Atualizar).Methods("PUT")

	// Comentários
	api.HandleFunc("/vendas/{id}/comentarios", comentarioHandler.Criar).Methods("POST")
	api.HandleFunc("/vendas/{id}/comentarios", comentarioHandler.ListarPorVenda).Methods("GET")
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Atualizar).Methods("PUT")

	// Documentos
	api.HandleFunc("/documentos/{id}", documentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/documentos/{id}/visualizar", documentoHandler.Visualizar).Methods("GET")

	// Checklist da venda
	api.HandleFunc("/vendas/{id}/checklist/garantir", checklistHandler.Garantir).Methods("GET")
	api.HandleFunc("/vendas/{id}/checklist", checklistHandler.Buscar).Methods("GET")
	api.HandleFunc("/vendas/{id}/checklist/grupos/{grupo}/instancias", checklistHandler.AdicionarInstanciaGrupo).Methods("POST")
	api.HandleFunc("/checklist/itens/{id}/upload", checklistHandler.Upload).Methods("POST")

	// Rotas restritas a admin (mesmo subrouter, portão por rota)
	admin := func(h http.HandlerFunc) http.Handler { return auth.RequireAdmin(h) }

	api.Handle("/corretores/{id}", admin(corretorHandler.Deletar)).Methods("DELETE")
	api.Handle("/clientes/{id}", admin(clienteHandler.Deletar)).Methods("DELETE")
	api.Handle("/vendas/{id}", admin(vendaHandler.Deletar)).Methods("DELETE")
	api.Handle("/produtos", admin(produtoHandler.Criar)).Methods("POST")
	api.Handle("/apolices/{id}", admin(apoliceHandler.Deletar)).Methods("DELETE")
	api.Handle("/comentarios/{id}", admin(comentarioHandler.Remover)).Methods("DELETE")

	api.Handle("/checklist/modelos", admin(checklistHandler.CriarModelo)).Methods("POST")
	api.Handle("/checklist/modelos", admin(checklistHandler.ListarModelos)).Methods("GET")
	api.Handle("/checklist/modelos/{id}/ativar", admin(checklistHandler.AtivarModelo)).Methods("POST")
	api.Handle("/checklist/itens/{id}/estado", admin(checklistHandler.AlterarEstado)).Methods("POST")
	api.Handle("/checklist/itens/{id}/revisao", admin(checklistHandler.Revisar)).Methods("POST")
	api.Handle("/checklist/itens/{id}/revisao/aprovar-pendentes", admin(checklistHandler.AprovarPendentes)).Methods("POST")
	api.Handle("/checklist/itens/{id}/revisao/rejeitar-pendentes", admin(checklistHandler.RejeitarPendentes)).Methods("POST")
	api.Handle("/vendas/{id}/checklist/recalcular", admin(checklistHandler.Recalcular)).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	fmt.Println("Servidor rodando em http://localhost:8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
