package server

import (
	"encoding/json"
	"net/http"

	"github.com/HouseYeung/Stock-Time/internal/model"
	"github.com/HouseYeung/Stock-Time/internal/session"
)

// displayLayout matches the original UI: date, minute precision, weekday.
const displayLayout = "2006-01-02 15:04 Monday"

type timeStatusResponse struct {
	USTime        string  `json:"us_time"`
	ChinaTime     string  `json:"china_time"`
	CurrentState  string  `json:"current_state"`
	NextState     string  `json:"next_state"`
	SecondsToNext float64 `json:"time_to_next_state_seconds"`
}

type holidayWire struct {
	EventName   string `json:"event_name"`
	Date        string `json:"date"`
	TradingHour string `json:"trading_hour"`
}

type recentHolidaysResponse struct {
	UpcomingHoliday *holidayWire `json:"upcoming_holiday"`
}

type quoteResponse struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Source        string  `json:"source"`
}

type tradeResponse struct {
	Symbol     string  `json:"symbol"`
	Price      float64 `json:"price"`
	Volume     float64 `json:"volume"`
	EventTs    int64   `json:"event_ts"`
	ReceivedTs int64   `json:"received_ts"`
}

type healthResponse struct {
	Status            string `json:"status"`
	FeedConnected     bool   `json:"feed_connected"`
	Holidays          int    `json:"holidays"`
	HolidaysRefreshed string `json:"holidays_refreshed_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTimeStatus(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()

	st, err := session.Compute(now, s.calendar)
	if err != nil {
		s.logger.Error("session computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "session state unavailable")
		return
	}

	writeJSON(w, http.StatusOK, timeStatusResponse{
		USTime:        now.Format(displayLayout),
		ChinaTime:     now.In(s.displayLoc).Format(displayLayout),
		CurrentState:  st.Current.Label(),
		NextState:     st.Next.Label(),
		SecondsToNext: st.SecondsToNext,
	})
}

func (s *Server) handleRecentHolidays(w http.ResponseWriter, r *http.Request) {
	resp := recentHolidaysResponse{}
	if ev := s.calendar.Upcoming(s.clock.Now()); ev != nil {
		resp.UpcomingHoliday = &holidayWire{
			EventName:   ev.EventName,
			Date:        ev.Date,
			TradingHour: ev.TradingHour,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol parameter required")
		return
	}

	q, err := s.quotes.GetQuote(r.Context(), symbol)
	if err != nil {
		s.logger.Warn("quote fetch failed", "symbol", symbol, "error", err)
		writeError(w, http.StatusBadGateway, "quote unavailable")
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Symbol:        q.Symbol,
		CurrentPrice:  q.Current,
		PreviousClose: q.PreviousClose,
		Change:        q.Change,
		PercentChange: q.PercentChange,
		Source:        "REST",
	})
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol parameter required")
		return
	}

	rec, ok := s.trades.Get(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "no trade observed for symbol")
		return
	}

	writeJSON(w, http.StatusOK, tradeToResponse(rec))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		FeedConnected: s.feed.Connected(),
		Holidays:      s.calendar.Len(),
	}
	if t := s.calendar.LastRefreshed(); !t.IsZero() {
		resp.HolidaysRefreshed = t.UTC().Format("2006-01-02T15:04:05Z")
	}
	writeJSON(w, http.StatusOK, resp)
}

func tradeToResponse(rec model.TradeRecord) tradeResponse {
	return tradeResponse{
		Symbol:     rec.Symbol,
		Price:      rec.Price,
		Volume:     rec.Volume,
		EventTs:    rec.EventTime.UnixMilli(),
		ReceivedTs: rec.ReceivedAt.UnixMilli(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
