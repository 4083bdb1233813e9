package botui

import (
	"strconv"
	"strings"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
)

// Page names one message template. Rendering is a pure function of the
// page, the locale and the params; pages render with HTML parse mode.
type Page string

const (
	PageStart            Page = "start"
	PageManagerStart     Page = "manager_start"
	PageLoading          Page = "loading"
	PageRandomNote       Page = "random_note"
	PageExtra            Page = "extra"
	PageUpload           Page = "upload"
	PageList             Page = "list"
	PageDeleteNote       Page = "delete_note"
	PageDeleteSuccess    Page = "delete_success"
	PageDeleteError      Page = "delete_error"
	PageEraseAll         Page = "erase_all"
	PageEraseSuccess     Page = "erase_success"
	PageEraseError       Page = "erase_error"
	PageUploadSuccess    Page = "upload_success"
	PageUploadError      Page = "upload_error"
	PageLanguage         Page = "language"
	PageHelp             Page = "help"
	PageManagerHelp      Page = "manager_help"
	PageCredits          Page = "credits"
	PageUnsupportedInput Page = "unsupported_input"
	PageError            Page = "error"
)

// Params carries the values a template may interpolate. Unused fields
// are ignored by pages that do not reference them.
type Params struct {
	Username    string
	NoteID      int64
	FileName    string
	Media       string
	TotalNotes  int64
	TotalUsers  int
	NotesList   string
	Count       int
	Author      string
	ProfileName string
	ProfileURL  string
	RepoURL     string
}

// RenderPage resolves the page text for the locale, falling back to the
// default locale when the translation is missing, and interpolates the
// params.
func RenderPage(page Page, locale locales.Locale, p Params) string {
	byLocale, ok := pageText[page]
	if !ok {
		return ""
	}
	raw, ok := byLocale[locale]
	if !ok {
		raw = byLocale[locales.Default]
	}

	replacer := strings.NewReplacer(
		"{user}", p.Username,
		"{note_id}", strconv.FormatInt(p.NoteID, 10),
		"{file_name}", p.FileName,
		"{media}", p.Media,
		"{total_notes}", strconv.FormatInt(p.TotalNotes, 10),
		"{total_users}", strconv.Itoa(p.TotalUsers),
		"{notes_list}", p.NotesList,
		"{count}", strconv.Itoa(p.Count),
		"{author}", p.Author,
		"{profile_name}", p.ProfileName,
		"{profile_url}", p.ProfileURL,
		"{repo_url}", p.RepoURL,
	)
	return replacer.Replace(raw)
}

var pageText = map[Page]map[locales.Locale]string{
	PageStart: {
		locales.LocaleEN: `<b>Hi {user}!</b>
Feeling down? Your friends recorded some video notes to cheer you up.
Tap the button below or type <code>/ask_friend</code> to receive a random one.

Type <code>/help</code> for all available commands.`,
		locales.LocaleES: `<b>¡Hola {user}!</b>
¿Estás de bajón? Tus amigos grabaron video notas para animarte.
Pulsa el botón de abajo o escribe <code>/ask_friend</code> para recibir una al azar.

Escribe <code>/help</code> para ver todos los comandos.`,
		locales.LocaleIT: `<b>Ciao {user}!</b>
Giornata storta? I tuoi amici hanno registrato delle video note per tirarti su.
Tocca il pulsante qui sotto o scrivi <code>/ask_friend</code> per riceverne una a caso.

Scrivi <code>/help</code> per tutti i comandi disponibili.`,
		locales.LocaleUA: `<b>Привіт, {user}!</b>
Сумуєш? Твої друзі записали відеонотатки, щоб підбадьорити тебе.
Натисни кнопку нижче або введи <code>/ask_friend</code>, щоб отримати випадкову.

Введи <code>/help</code>, щоб побачити всі команди.`,
	},
	PageManagerStart: {
		locales.LocaleEN: `<b>Hi {user}!</b>
This is the CheerUp maintenance bot: upload and manage the video notes your friend receives from the main CheerUp bot.
Just send a video note (aka bubble video) and it will be ready to go.

Type <code>/list</code> to review every note you already uploaded.
Type <code>/help</code> for further help and additional commands.`,
		locales.LocaleES: `<b>¡Hola {user}!</b>
Este es el bot de mantenimiento de CheerUp: sube y gestiona las video notas que tu amigo recibe del bot principal.
Envía una video nota (vídeo burbuja) y quedará lista.

Escribe <code>/list</code> para revisar las notas que ya subiste.
Escribe <code>/help</code> para más ayuda y comandos.`,
		locales.LocaleIT: `<b>Ciao {user}!</b>
Questo è il bot di manutenzione di CheerUp: carica e gestisci le video note che il tuo amico riceve dal bot principale.
Invia una video nota (video a bolla) e sarà subito pronta.

Scrivi <code>/list</code> per rivedere le note già caricate.
Scrivi <code>/help</code> per ulteriore aiuto e altri comandi.`,
		locales.LocaleUA: `<b>Привіт, {user}!</b>
Це сервісний бот CheerUp: завантажуй і керуй відеонотатками, які твій друг отримує від головного бота.
Просто надішли відеонотатку (кружечок), і вона буде готова.

Введи <code>/list</code>, щоб переглянути вже завантажені нотатки.
Введи <code>/help</code> для додаткової допомоги та команд.`,
	},
	PageLoading: {
		locales.LocaleEN: `⏳️ <i>Loading…</i>`,
		locales.LocaleES: `⏳️ <i>Cargando…</i>`,
		locales.LocaleIT: `⏳️ <i>Caricamento…</i>`,
		locales.LocaleUA: `⏳️ <i>Завантаження…</i>`,
	},
	PageRandomNote: {
		locales.LocaleEN: `💌️ A video note from <b>@{user}</b> to cheer you up!`,
		locales.LocaleES: `💌️ ¡Una video nota de <b>@{user}</b> para animarte!`,
		locales.LocaleIT: `💌️ Una video nota da <b>@{user}</b> per tirarti su!`,
		locales.LocaleUA: `💌️ Відеонотатка від <b>@{user}</b>, щоб підбадьорити тебе!`,
	},
	PageExtra: {
		locales.LocaleEN: `✨️ <b>Extra</b>
Hey {user}, here is what your friends uploaded so far:

Total video notes: <b>{total_notes}</b>
Contributors: <b>{total_users}</b>

{notes_list}`,
		locales.LocaleES: `✨️ <b>Extra</b>
Hola {user}, esto es lo que tus amigos han subido hasta ahora:

Video notas totales: <b>{total_notes}</b>
Colaboradores: <b>{total_users}</b>

{notes_list}`,
		locales.LocaleIT: `✨️ <b>Extra</b>
Ehi {user}, ecco cosa hanno caricato finora i tuoi amici:

Video note totali: <b>{total_notes}</b>
Partecipanti: <b>{total_users}</b>

{notes_list}`,
		locales.LocaleUA: `✨️ <b>Додатково</b>
Привіт, {user}! Ось що твої друзі вже завантажили:

Всього відеонотаток: <b>{total_notes}</b>
Учасників: <b>{total_users}</b>

{notes_list}`,
	},
	PageUpload: {
		locales.LocaleEN: `📤️ <b>Upload</b>
Send a video note (bubble video) to this chat and it will be stored right away.
So far there are <b>{total_notes}</b> notes from <b>{total_users}</b> contributors.`,
		locales.LocaleES: `📤️ <b>Subir</b>
Envía una video nota (vídeo burbuja) a este chat y se guardará al instante.
Hasta ahora hay <b>{total_notes}</b> notas de <b>{total_users}</b> colaboradores.`,
		locales.LocaleIT: `📤️ <b>Carica</b>
Invia una video nota (video a bolla) in questa chat e verrà salvata subito.
Finora ci sono <b>{total_notes}</b> note da <b>{total_users}</b> partecipanti.`,
		locales.LocaleUA: `📤️ <b>Завантаження</b>
Надішли відеонотатку (кружечок) у цей чат, і вона одразу збережеться.
Наразі є <b>{total_notes}</b> нотаток від <b>{total_users}</b> учасників.`,
	},
	PageList: {
		locales.LocaleEN: `📃️ <b>Your video notes</b>
@{user}, you uploaded <b>{count}</b> video notes, listed above.
Tap a note's delete button to remove it.`,
		locales.LocaleES: `📃️ <b>Tus video notas</b>
@{user}, subiste <b>{count}</b> video notas, listadas arriba.
Pulsa el botón de borrar de una nota para eliminarla.`,
		locales.LocaleIT: `📃️ <b>Le tue video note</b>
@{user}, hai caricato <b>{count}</b> video note, elencate qui sopra.
Tocca il pulsante elimina di una nota per rimuoverla.`,
		locales.LocaleUA: `📃️ <b>Твої відеонотатки</b>
@{user}, ти завантажив(ла) <b>{count}</b> відеонотаток, перелічених вище.
Натисни кнопку видалення під нотаткою, щоб прибрати її.`,
	},
	PageDeleteNote: {
		locales.LocaleEN: `🗑️ <b>Delete video note #{note_id}</b>

⚠️ This will <b>permanently delete</b> the note. Do you confirm?`,
		locales.LocaleES: `🗑️ <b>Borrar video nota #{note_id}</b>

⚠️ Esto <b>borrará permanentemente</b> la nota. ¿Confirmas?`,
		locales.LocaleIT: `🗑️ <b>Elimina video nota #{note_id}</b>

⚠️ La nota verrà <b>eliminata per sempre</b>. Confermi?`,
		locales.LocaleUA: `🗑️ <b>Видалити відеонотатку #{note_id}</b>

⚠️ Нотатку буде <b>видалено назавжди</b>. Підтверджуєш?`,
	},
	PageDeleteSuccess: {
		locales.LocaleEN: `✅️ Video note <code>{file_name}</code> deleted.`,
		locales.LocaleES: `✅️ Video nota <code>{file_name}</code> borrada.`,
		locales.LocaleIT: `✅️ Video nota <code>{file_name}</code> eliminata.`,
		locales.LocaleUA: `✅️ Відеонотатку <code>{file_name}</code> видалено.`,
	},
	PageDeleteError: {
		locales.LocaleEN: `❌️ Could not delete the video note. Try again from <code>/list</code>.`,
		locales.LocaleES: `❌️ No se pudo borrar la video nota. Inténtalo de nuevo desde <code>/list</code>.`,
		locales.LocaleIT: `❌️ Impossibile eliminare la video nota. Riprova da <code>/list</code>.`,
		locales.LocaleUA: `❌️ Не вдалося видалити відеонотатку. Спробуй ще раз через <code>/list</code>.`,
	},
	PageEraseAll: {
		locales.LocaleEN: `🚨️ <b>ERASE ALL VIDEO NOTES</b> 🚨️

⚠️ <b>WARNING</b> ⚠️
This operation will <b>permanently delete all your notes</b>

Do you confirm?`,
		locales.LocaleES: `🚨️ <b>BORRAR TODAS LAS VIDEO NOTAS</b> 🚨️

⚠️ <b>ATENCIÓN</b> ⚠️
Esta operación <b>borrará permanentemente todas tus notas</b>

¿Confirmas?`,
		locales.LocaleIT: `🚨️ <b>CANCELLA TUTTE LE VIDEO NOTE</b> 🚨️

⚠️ <b>ATTENZIONE</b> ⚠️
Questa operazione <b>eliminerà per sempre tutte le tue note</b>

Confermi?`,
		locales.LocaleUA: `🚨️ <b>СТЕРТИ ВСІ ВІДЕОНОТАТКИ</b> 🚨️

⚠️ <b>УВАГА</b> ⚠️
Ця операція <b>назавжди видалить усі твої нотатки</b>

Підтверджуєш?`,
	},
	PageEraseSuccess: {
		locales.LocaleEN: `✅️ All your video notes were erased.`,
		locales.LocaleES: `✅️ Se borraron todas tus video notas.`,
		locales.LocaleIT: `✅️ Tutte le tue video note sono state cancellate.`,
		locales.LocaleUA: `✅️ Усі твої відеонотатки стерто.`,
	},
	PageEraseError: {
		locales.LocaleEN: `❌️ Could not erase your video notes. Try again later.`,
		locales.LocaleES: `❌️ No se pudieron borrar tus video notas. Inténtalo más tarde.`,
		locales.LocaleIT: `❌️ Impossibile cancellare le tue video note. Riprova più tardi.`,
		locales.LocaleUA: `❌️ Не вдалося стерти твої відеонотатки. Спробуй пізніше.`,
	},
	PageUploadSuccess: {
		locales.LocaleEN: `✅️ Video note saved! Your friend can receive it now.`,
		locales.LocaleES: `✅️ ¡Video nota guardada! Tu amigo ya puede recibirla.`,
		locales.LocaleIT: `✅️ Video nota salvata! Il tuo amico può già riceverla.`,
		locales.LocaleUA: `✅️ Відеонотатку збережено! Твій друг уже може її отримати.`,
	},
	PageUploadError: {
		locales.LocaleEN: `❌️ Something went wrong while saving the video note. Please try again.`,
		locales.LocaleES: `❌️ Algo salió mal al guardar la video nota. Inténtalo otra vez.`,
		locales.LocaleIT: `❌️ Qualcosa è andato storto salvando la video nota. Riprova.`,
		locales.LocaleUA: `❌️ Щось пішло не так під час збереження відеонотатки. Спробуй ще раз.`,
	},
	PageLanguage: {
		locales.LocaleEN: `🌍️ <b>Language</b>
Pick the language the bot should use:`,
		locales.LocaleES: `🌍️ <b>Idioma</b>
Elige el idioma que debe usar el bot:`,
		locales.LocaleIT: `🌍️ <b>Lingua</b>
Scegli la lingua che il bot deve usare:`,
		locales.LocaleUA: `🌍️ <b>Мова</b>
Обери мову, якою має спілкуватися бот:`,
	},
	PageHelp: {
		locales.LocaleEN: `<b>Help & Commands</b>
Available commands:
<code>/start</code> - bot starting page
<code>/ask_friend</code> - receive a random video note from your friends
<code>/extra</code> - stats about uploaded notes
<code>/list</code> - list all uploaded video notes
<code>/credits</code> - bot credits with author profile and code repository links`,
		locales.LocaleES: `<b>Ayuda y comandos</b>
Comandos disponibles:
<code>/start</code> - página inicial del bot
<code>/ask_friend</code> - recibe una video nota al azar de tus amigos
<code>/extra</code> - estadísticas de las notas subidas
<code>/list</code> - lista todas las video notas subidas
<code>/credits</code> - créditos del bot con enlaces al perfil del autor y al repositorio`,
		locales.LocaleIT: `<b>Aiuto e comandi</b>
Comandi disponibili:
<code>/start</code> - pagina iniziale del bot
<code>/ask_friend</code> - ricevi una video nota a caso dai tuoi amici
<code>/extra</code> - statistiche sulle note caricate
<code>/list</code> - elenca tutte le video note caricate
<code>/credits</code> - crediti del bot con i link al profilo dell'autore e al repository`,
		locales.LocaleUA: `<b>Допомога та команди</b>
Доступні команди:
<code>/start</code> - початкова сторінка бота
<code>/ask_friend</code> - отримати випадкову відеонотатку від друзів
<code>/extra</code> - статистика завантажених нотаток
<code>/list</code> - список усіх завантажених відеонотаток
<code>/credits</code> - автори бота з посиланнями на профіль та репозиторій`,
	},
	PageManagerHelp: {
		locales.LocaleEN: `<b>Help & Commands</b>
This bot handles video notes only. Any textual message shows the starting page; other media (pictures, audio, regular videos and so on) fail with an error message.

Available commands:
<code>/start</code> - bot starting page
<code>/upload</code> - how to upload a new video note
<code>/list</code> - list all video notes you uploaded
<code>/language</code> - change bot language
<code>/credits</code> - bot credits with author profile and code repository links`,
		locales.LocaleES: `<b>Ayuda y comandos</b>
Este bot solo acepta video notas. Cualquier mensaje de texto muestra la página inicial; otros medios (fotos, audio, vídeos normales, etc.) fallan con un mensaje de error.

Comandos disponibles:
<code>/start</code> - página inicial del bot
<code>/upload</code> - cómo subir una nueva video nota
<code>/list</code> - lista todas las video notas que subiste
<code>/language</code> - cambia el idioma del bot
<code>/credits</code> - créditos del bot con enlaces al perfil del autor y al repositorio`,
		locales.LocaleIT: `<b>Aiuto e comandi</b>
Questo bot accetta solo video note. Qualsiasi messaggio di testo mostra la pagina iniziale; altri media (foto, audio, video normali e così via) falliscono con un messaggio di errore.

Comandi disponibili:
<code>/start</code> - pagina iniziale del bot
<code>/upload</code> - come caricare una nuova video nota
<code>/list</code> - elenca tutte le video note caricate
<code>/language</code> - cambia la lingua del bot
<code>/credits</code> - crediti del bot con i link al profilo dell'autore e al repository`,
		locales.LocaleUA: `<b>Допомога та команди</b>
Цей бот приймає лише відеонотатки. Будь-яке текстове повідомлення показує початкову сторінку; інші медіа (фото, аудіо, звичайні відео тощо) завершуються повідомленням про помилку.

Доступні команди:
<code>/start</code> - початкова сторінка бота
<code>/upload</code> - як завантажити нову відеонотатку
<code>/list</code> - список усіх завантажених відеонотаток
<code>/language</code> - змінити мову бота
<code>/credits</code> - автори бота з посиланнями на профіль та репозиторій`,
	},
	PageCredits: {
		locales.LocaleEN: `<b>Credits</b>
This bot has been created in March 2024 by {author} as open source software, all code is published on Github

Author: {profile_name} - {profile_url}
Code: {repo_url}

#supportukraine
Author stands with ukrainian people in their fight for Freedom and Peace - visit https://stand-with-ukraine.pp.ua/ for a list of organizations you can support and donate to`,
		locales.LocaleES: `<b>Créditos</b>
Este bot fue creado en marzo de 2024 por {author} como software libre, todo el código está publicado en Github

Autor: {profile_name} - {profile_url}
Código: {repo_url}

#supportukraine
El autor apoya al pueblo ucraniano en su lucha por la Libertad y la Paz - visita https://stand-with-ukraine.pp.ua/ para ver organizaciones a las que puedes donar`,
		locales.LocaleIT: `<b>Crediti</b>
Questo bot è stato creato a marzo 2024 da {author} come software open source, tutto il codice è pubblicato su Github

Autore: {profile_name} - {profile_url}
Codice: {repo_url}

#supportukraine
L'autore sostiene il popolo ucraino nella sua lotta per Libertà e Pace - visita https://stand-with-ukraine.pp.ua/ per un elenco di organizzazioni da sostenere`,
		locales.LocaleUA: `<b>Автори</b>
Цього бота створив у березні 2024 року {author} як програмне забезпечення з відкритим кодом, увесь код опубліковано на Github

Автор: {profile_name} - {profile_url}
Код: {repo_url}

#supportukraine
Автор підтримує український народ у боротьбі за Свободу та Мир - відвідай https://stand-with-ukraine.pp.ua/, щоб побачити організації, яким можна допомогти`,
	},
	PageUnsupportedInput: {
		locales.LocaleEN: `⚠️ <b>WARNING</b> ⚠️
<b>This bot can't receive {media}. Check /help for instructions.</b>`,
		locales.LocaleES: `⚠️ <b>ATENCIÓN</b> ⚠️
<b>Este bot no puede recibir {media}. Consulta /help para instrucciones.</b>`,
		locales.LocaleIT: `⚠️ <b>ATTENZIONE</b> ⚠️
<b>Questo bot non può ricevere {media}. Consulta /help per le istruzioni.</b>`,
		locales.LocaleUA: `⚠️ <b>УВАГА</b> ⚠️
<b>Цей бот не може прийняти {media}. Дивись /help для інструкцій.</b>`,
	},
	PageError: {
		locales.LocaleEN: `❌️ Something went wrong. Please try again later.`,
		locales.LocaleES: `❌️ Algo salió mal. Inténtalo más tarde.`,
		locales.LocaleIT: `❌️ Qualcosa è andato storto. Riprova più tardi.`,
		locales.LocaleUA: `❌️ Щось пішло не так. Спробуй пізніше.`,
	},
}
