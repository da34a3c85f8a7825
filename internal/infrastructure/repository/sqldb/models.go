package sqldb

import "database/sql"

// Table models mirror the Spanish-named schema the club's data has
// always used; mapping to the domain types happens at the repository
// boundary.

type torneoTableModel struct {
	ID        int64  `db:"id"`
	Nombre    string `db:"nombre"`
	Temporada string `db:"temporada"`
}

type rivalTableModel struct {
	ID     int64  `db:"id"`
	Nombre string `db:"nombre"`
}

type rivalAliasTableModel struct {
	Alias    string `db:"alias"`
	Canonico string `db:"nombre_canonico"`
}

type oficialTableModel struct {
	ID     int64  `db:"id"`
	Nombre string `db:"nombre"`
}

type posicionTableModel struct {
	ID     int64  `db:"id"`
	Nombre string `db:"nombre"`
}

type jugadorTableModel struct {
	ID                   int64          `db:"id"`
	Nombre               sql.NullString `db:"nombre"`
	Apellido             string         `db:"apellido"`
	PosicionID           int64          `db:"id_posicion"`
	RefFila              sql.NullString `db:"ref_fila"`
	PJIniciales          int            `db:"pj_iniciales"`
	GolesIniciales       int            `db:"goles_iniciales"`
	RecibidosIniciales   int            `db:"goles_recibidos_iniciales"`
	AsistenciasIniciales int            `db:"asistencias_iniciales"`
	AmarillasIniciales   int            `db:"amarillas_iniciales"`
	RojasIniciales       int            `db:"rojas_iniciales"`
	TitularIniciales     int            `db:"titular_iniciales"`
	SuplenteIniciales    int            `db:"suplente_iniciales"`
}

type partidoTableModel struct {
	ID          int64          `db:"id"`
	Fecha       sql.NullString `db:"fecha"`
	TorneoID    int64          `db:"id_torneo"`
	RivalID     int64          `db:"id_rival"`
	ArbitroID   sql.NullInt64  `db:"id_arbitro"`
	TecnicoID   sql.NullInt64  `db:"id_tecnico"`
	Condicion   string         `db:"condicion"`
	GolesFavor  sql.NullInt64  `db:"goles_favor"`
	GolesContra sql.NullInt64  `db:"goles_contra"`
	Goleadores  sql.NullString `db:"goleadores"`
	Expulsados  sql.NullString `db:"expulsados"`
	Penales     sql.NullString `db:"penales"`
}

type statTableModel struct {
	PartidoID      int64 `db:"id_partido"`
	JugadorID      int64 `db:"id_jugador"`
	Minutos        int   `db:"minutos_jugados"`
	Titular        bool  `db:"es_titular"`
	Goles          int   `db:"goles_marcados"`
	GolesRecibidos int   `db:"goles_recibidos"`
	Amarillas      int   `db:"amarillas"`
	Rojas          int   `db:"rojas"`
}

type usuarioTableModel struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Rol          string         `db:"rol"`
	Nombre       sql.NullString `db:"nombre"`
}
