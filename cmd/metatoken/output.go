package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
	"github.com/goliatone/go-meta-tokens/providers/meta/pages"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle("%s", title)
	}
	return t
}

func renderKeyValues(w io.Writer, title string, rows [][2]string) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	for _, row := range rows {
		t.AppendRow(table.Row{row[0], row[1]})
	}
	t.Render()
}

func renderToken(w io.Writer, title, value string) {
	renderKeyValues(w, title, [][2]string{{"access_token", value}})
}

func renderGrant[T facebook.TokenValue](w io.Writer, title string, grant facebook.Grant[T], now time.Time) {
	token := facebook.ToOAuth2Token(grant, now)
	rows := [][2]string{
		{"access_token", token.AccessToken},
		{"token_type", token.TokenType},
	}
	if grant.ExpiresIn != nil {
		rows = append(rows,
			[2]string{"expires_in", grant.ExpiresIn.String()},
			[2]string{"expires_at", token.Expiry.UTC().Format(time.RFC3339)},
		)
	} else {
		rows = append(rows, [2]string{"expires_in", "none"})
	}
	renderKeyValues(w, title, rows)
}

func renderDebugResult(w io.Writer, title string, result facebook.DebugTokenResult) {
	rows := [][2]string{
		{"is_valid", fmt.Sprint(result.IsValid)},
		{"scopes", strings.Join(result.Scopes, ",")},
	}
	if result.TypeExtra != nil {
		rows = append(rows, [2]string{"type", string(result.TypeExtra.TokenType())})
	}
	if appID, ok := result.AppID(); ok {
		rows = append(rows, [2]string{"app_id", fmt.Sprint(appID)})
	}
	switch extra := result.TypeExtra.(type) {
	case facebook.DebugTokenAppExtra:
		rows = append(rows, [2]string{"application", extra.Application})
	case facebook.DebugTokenUserExtra:
		rows = append(rows, userExtraRows(extra)...)
	case facebook.DebugTokenPageExtra:
		rows = append(rows, userExtraRows(extra.DebugTokenUserExtra)...)
		rows = append(rows, [2]string{"profile_id", fmt.Sprint(extra.ProfileID)})
	}
	if result.Error != nil {
		rows = append(rows, [2]string{"error", fmt.Sprintf("(#%d) %s", result.Error.Code, result.Error.Message)})
	}
	renderKeyValues(w, title, rows)
}

func userExtraRows(extra facebook.DebugTokenUserExtra) [][2]string {
	rows := [][2]string{
		{"application", extra.Application},
		{"user_id", fmt.Sprint(extra.UserID)},
		{"expires", extra.Expires().String()},
	}
	if !extra.DataAccessExpiresAt.IsZero() {
		rows = append(rows, [2]string{"data_access_expires_at", extra.DataAccessExpiresAt.UTC().Format(time.RFC3339)})
	}
	return rows
}

func renderFailure(w io.Writer, title string, failure common.Failure) {
	graphErr := failure.GraphError()
	rows := [][2]string{
		{"status_code", fmt.Sprint(failure.StatusCode)},
		{"code", fmt.Sprint(graphErr.Code)},
		{"message", graphErr.Message},
	}
	if graphErr.Type != "" {
		rows = append(rows, [2]string{"type", string(graphErr.Type)})
	}
	if known, ok := failure.KnownErrorCase(); ok {
		rows = append(rows, [2]string{"known_error_case", known.String()})
	}
	if graphErr.FBTraceID != "" {
		rows = append(rows, [2]string{"fbtrace_id", graphErr.FBTraceID})
	}
	renderKeyValues(w, title, rows)
}

func renderPages(w io.Writer, response pages.SearchResponse) {
	t := newTable(w, "pages")
	t.AppendHeader(table.Row{"ID", "NAME", "CITY", "VERIFICATION", "LINK"})
	for _, page := range response.Data {
		city, verification := "", ""
		if page.Location != nil && page.Location.City != nil {
			city = *page.Location.City
		}
		if page.VerificationStatus != nil {
			verification = *page.VerificationStatus
		}
		t.AppendRow(table.Row{page.ID, page.Name, city, verification, page.Link})
	}
	t.Render()
	if cursor, ok := response.NextCursor(); ok {
		fmt.Fprintf(w, "next cursor: %s\n", cursor)
	}
}

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, text.FgYellow.Sprintf(format, args...))
}
