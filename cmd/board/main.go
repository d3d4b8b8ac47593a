package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"brutus/internal/board"
	"brutus/internal/config"
	"brutus/internal/domain"
	"brutus/internal/infrastructure/logger"
)

var columnTitles = map[domain.Status]string{
	domain.StatusPending:   "PENDENTES",
	domain.StatusPreparing: "EM PREPARAÇÃO",
	domain.StatusReady:     "PRONTOS",
	domain.StatusDelivered: "ENTREGUES",
	domain.StatusArchived:  "ARQUIVADOS",
}

type boardApp struct {
	client *board.Client
	poller *board.Poller
	logger *zap.Logger

	mu     sync.Mutex
	orders map[int64]board.Order

	paused    bool
	autoPrint bool
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	app := &boardApp{
		client:    board.NewClient(cfg.Board.APIBaseURL, 10*time.Second, zapLogger),
		logger:    zapLogger,
		orders:    make(map[int64]board.Order),
		autoPrint: cfg.Board.AutoPrint,
	}
	app.poller = board.NewPoller(app.client, cfg.Board.PollInterval, app.renderSnapshot, printReceipt, zapLogger)
	app.poller.SetAutoPrint(cfg.Board.AutoPrint)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	go app.commandLoop(ctx, cancel)

	printHelp()
	app.poller.Run(ctx)
}

func printHelp() {
	fmt.Println("Comandos: a <id> avançar | v <id> voltar | x <id> arquivar | d <id> excluir")
	fmt.Println("          p pausar/retomar | t impressão automática | i <id> imprimir | q sair")
}

// commandLoop reads staff actions from stdin. Every mutation goes to
// the API and then forces a refresh; the board never mutates its local
// view directly.
func (a *boardApp) commandLoop(ctx context.Context, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q":
			cancel()
			return
		case "p":
			a.paused = !a.paused
			a.poller.SetEnabled(!a.paused)
			if a.paused {
				fmt.Println("Atualização automática pausada")
			} else {
				fmt.Println("Atualização automática retomada")
			}
			continue
		case "t":
			a.autoPrint = !a.autoPrint
			a.poller.SetAutoPrint(a.autoPrint)
			fmt.Printf("Impressão automática: %v\n", a.autoPrint)
			continue
		}

		if len(fields) != 2 {
			printHelp()
			continue
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Println("Número de pedido inválido")
			continue
		}

		a.runAction(ctx, fields[0], id)
	}
}

func (a *boardApp) runAction(ctx context.Context, action string, id int64) {
	order, ok := a.lookup(id)
	if !ok {
		fmt.Printf("Pedido #%d não encontrado no quadro\n", id)
		return
	}

	var err error
	switch action {
	case "a":
		err = a.client.Advance(ctx, order)
	case "v":
		err = a.client.Regress(ctx, order)
	case "x":
		err = a.client.Archive(ctx, order)
	case "d":
		err = a.client.Remove(ctx, order.ID)
	case "i":
		printReceipt(order, board.Receipt(order, time.Now()))
		return
	default:
		printHelp()
		return
	}

	if err != nil {
		a.logger.Warn("board action failed", zap.String("action", action), zap.Int64("orderId", id), zap.Error(err))
		fmt.Printf("Falha na ação: %v\n", err)
		return
	}
	a.poller.Refresh()
}

func (a *boardApp) lookup(id int64) (board.Order, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	o, ok := a.orders[id]
	return o, ok
}

func (a *boardApp) renderSnapshot(snap board.Snapshot) {
	a.mu.Lock()
	a.orders = make(map[int64]board.Order)
	for _, orders := range snap.Columns {
		for _, o := range orders {
			a.orders[o.ID] = o
		}
	}
	a.mu.Unlock()

	fmt.Printf("\n===== QUADRO DE PEDIDOS %s =====\n", time.Now().Format("15:04:05"))
	fmt.Printf("Pedidos ativos: %d | Valor total: R$ %.2f | Pendentes: %d | Em preparação: %d\n",
		snap.Summary.TotalOrders, snap.Summary.TotalValue,
		snap.Summary.PendingCount, snap.Summary.PreparingCount)

	for _, status := range domain.StatusOrder {
		orders := snap.Columns[status]
		fmt.Printf("\n%s (%d)\n", columnTitles[status], len(orders))
		for _, o := range orders {
			fmt.Printf("  #%d %s - R$ %.2f\n", o.ID, o.CustomerName, o.Total)
		}
	}
}

func printReceipt(o board.Order, receipt string) {
	fmt.Printf("\n----- IMPRESSÃO PEDIDO #%d -----\n%s\n", o.ID, receipt)
}
