package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/schedulist/schedulist/internal/rpc"
)

// Mux is the subset of routing needed to mount the RPC handlers. Both
// chi.Router and http.ServeMux satisfy it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterEventTypeHandlers mounts the event type procedures. The passed
// options should include the auth interceptor; the schema codec is always
// installed.
func RegisterEventTypeHandlers(mux Mux, svc *EventTypeService, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{rpc.WithCodec()}, opts...)

	mux.Handle(rpc.ProcedureListGroups, connect.NewUnaryHandler(rpc.ProcedureListGroups, svc.ListGroups, opts...))
	mux.Handle(rpc.ProcedureReorder, connect.NewUnaryHandler(rpc.ProcedureReorder, svc.Reorder, opts...))
	mux.Handle(rpc.ProcedureSetHidden, connect.NewUnaryHandler(rpc.ProcedureSetHidden, svc.SetHidden, opts...))
	mux.Handle(rpc.ProcedureDelete, connect.NewUnaryHandler(rpc.ProcedureDelete, svc.Delete, opts...))
	mux.Handle(rpc.ProcedureCreate, connect.NewUnaryHandler(rpc.ProcedureCreate, svc.Create, opts...))
}

// RegisterAuthHandlers mounts the authentication procedures. These must not
// carry the RequireAuth interceptor.
func RegisterAuthHandlers(mux Mux, svc *AuthService, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{rpc.WithCodec()}, opts...)

	mux.Handle(rpc.ProcedureRegister, connect.NewUnaryHandler(rpc.ProcedureRegister, svc.Register, opts...))
	mux.Handle(rpc.ProcedureLogin, connect.NewUnaryHandler(rpc.ProcedureLogin, svc.Login, opts...))
}
